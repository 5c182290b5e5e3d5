// Package docs registers the advisord OpenAPI document with swag so the
// Swagger UI under /swagger/ can serve it. The document is maintained by
// hand alongside internal/httpapi/server.go; TestOpenAPIDocumentCoversRoutes
// in internal/httpapi fails when a route is missing from it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "advisord maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/events": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Recent recovery action events, oldest first",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.EventsResponse"
                        }
                    }
                }
            }
        },
        "/fit": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "summary": "Classify a RAM requirement against the host or a supplied total",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.FitRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.FitResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/fit/last": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Most recent fit assessment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.FitResponse"
                        }
                    },
                    "404": {
                        "description": "No assessment yet",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/messages/classify": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "summary": "Classify a terminal chat message without acting on it",
                "parameters": [
                    {
                        "in": "body",
                        "name": "message",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.MessageRecord"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.DispositionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/messages/recover": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "summary": "Classify a message and fire its recovery action",
                "parameters": [
                    {
                        "in": "body",
                        "name": "message",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.MessageRecord"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.DispositionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/models": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "List catalog models",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ModelsResponse"
                        }
                    }
                }
            }
        },
        "/models/{id}/fit": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Classify a catalog model against the host",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.FitResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "summary": "Readiness: ready once host resources are known",
                "responses": {
                    "200": {
                        "description": "ready"
                    },
                    "503": {
                        "description": "probing"
                    }
                }
            }
        },
        "/resources": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Current host resources",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ResourcesInfo"
                        }
                    },
                    "503": {
                        "description": "Probe failed",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/ui/state": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "summary": "Navigation state raised by recovery actions",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.UIState"
                        }
                    }
                }
            }
        },
        "/ui/troubleshooting": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "summary": "Close the troubleshooting modal",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.UIState"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer",
                    "example": 400
                },
                "error": {
                    "type": "string",
                    "example": "invalid JSON body"
                }
            }
        },
        "types.EventRecord": {
            "type": "object",
            "properties": {
                "at": {
                    "type": "string",
                    "format": "date-time"
                },
                "fields": {
                    "type": "object"
                },
                "id": {
                    "type": "string",
                    "example": "6f1c2a4e-3b7d-4a52-9c57-1f0b8e2d9a10"
                },
                "message_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "example": "resend_requested"
                }
            }
        },
        "types.EventsResponse": {
            "type": "object",
            "properties": {
                "events": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.EventRecord"
                    }
                }
            }
        },
        "types.FitRequest": {
            "type": "object",
            "properties": {
                "required_ram": {
                    "type": "number",
                    "example": 4294967296
                },
                "total_ram": {
                    "type": "number",
                    "example": 8589934592
                }
            }
        },
        "types.FitResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "label": {
                    "type": "string",
                    "example": "Recommended"
                },
                "model_id": {
                    "type": "string"
                },
                "ratio": {
                    "type": "number",
                    "example": 0.5
                },
                "required_ram": {
                    "type": "number"
                },
                "tier": {
                    "type": "string",
                    "example": "positive"
                },
                "total_ram": {
                    "type": "number"
                }
            }
        },
        "types.MemInfo": {
            "type": "object",
            "properties": {
                "free": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer",
                    "example": 17179869184
                }
            }
        },
        "types.Model": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "example": "tinyllama-q4"
                },
                "max_ram_required": {
                    "type": "integer",
                    "example": 4294967296
                },
                "name": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "quant": {
                    "type": "string"
                }
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.Model"
                    }
                }
            }
        },
        "types.MessageRecord": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "object"
                },
                "engine": {
                    "type": "string",
                    "example": "openai"
                },
                "error_code": {
                    "type": "string",
                    "example": "invalid_api_key"
                },
                "id": {
                    "type": "string",
                    "example": "msg_01"
                },
                "status": {
                    "type": "string",
                    "example": "error"
                },
                "thread_id": {
                    "type": "string"
                }
            }
        },
        "types.ResourcesInfo": {
            "type": "object",
            "properties": {
                "mem": {
                    "$ref": "#/definitions/types.MemInfo"
                }
            }
        },
        "types.Surface": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string",
                    "example": "open_settings"
                },
                "action_label": {
                    "type": "string",
                    "example": "Settings"
                },
                "body": {
                    "type": "string"
                },
                "test_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "types.DispositionResponse": {
            "type": "object",
            "properties": {
                "disposition": {
                    "type": "string",
                    "example": "auth_error"
                },
                "executed": {
                    "type": "boolean"
                },
                "message_id": {
                    "type": "string"
                },
                "surface": {
                    "$ref": "#/definitions/types.Surface"
                }
            }
        },
        "types.UIState": {
            "type": "object",
            "properties": {
                "modal_troubleshooting": {
                    "type": "boolean"
                },
                "selected_setting_screen": {
                    "type": "string",
                    "example": "openai"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "advisord API",
	Description:      "Local API for model resource-fit advice and chat message recovery.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
