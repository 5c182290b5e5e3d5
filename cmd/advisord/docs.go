package main

// General API info for swaggo. The served document lives in docs/docs.go and
// is kept in step with internal/httpapi/server.go by hand.
//
// @title           advisord API
// @version         1.0
// @description     Local API for model resource-fit advice and chat message recovery.
//
// @contact.name   advisord maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
