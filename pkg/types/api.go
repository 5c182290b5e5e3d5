package types

import "time"

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of catalog models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// FitRequest asks whether a model with the given requirement fits the host.
type FitRequest struct {
	// Required RAM in bytes.
	// example: 4294967296
	RequiredRAM float64 `json:"required_ram" example:"4294967296"`
	// Optional host RAM in bytes. When omitted the host is probed.
	// example: 8589934592
	TotalRAM float64 `json:"total_ram,omitempty" example:"8589934592"`
}

// FitResponse reports the fit tier and its label.
type FitResponse struct {
	// Model id, when the request targeted a catalog model.
	ModelID string `json:"model_id,omitempty"`
	// One of unset, positive, neutral, negative.
	// example: positive
	Tier string `json:"tier" example:"positive"`
	// Human label for the tier; empty when the tier is unset.
	// example: Recommended
	Label string `json:"label" example:"Recommended"`
	// requiredRAM / totalRAM; zero when unknown.
	// example: 0.5
	Ratio float64 `json:"ratio" example:"0.5"`
	// example: 4294967296
	RequiredRAM float64 `json:"required_ram" example:"4294967296"`
	// example: 8589934592
	TotalRAM float64 `json:"total_ram" example:"8589934592"`
	// Probe failure reason when the tier could not be determined.
	Error string `json:"error,omitempty"`
}

// MessageRecord is the subset of a chat message the recovery layer reads.
type MessageRecord struct {
	// example: msg_01
	ID string `json:"id" example:"msg_01"`
	// example: thread_01
	ThreadID string `json:"thread_id,omitempty" example:"thread_01"`
	// One of ready, pending, stopped, error.
	// example: error
	Status string `json:"status" example:"error"`
	// Present only when status is error.
	// example: invalid_api_key
	ErrorCode string `json:"error_code,omitempty" example:"invalid_api_key"`
	// Engine/provider that produced the message.
	// example: openai
	Engine string `json:"engine,omitempty" example:"openai"`
	// Opaque display payload.
	Content any `json:"content,omitempty" swaggertype:"object"`
}

// Surface is the UI contract for a recovery disposition.
type Surface struct {
	// example: invalid-API-key-error
	TestID string `json:"test_id,omitempty" example:"invalid-API-key-error"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body"`
	// example: Settings
	ActionLabel string `json:"action_label" example:"Settings"`
	// One of regenerate, open_settings, open_troubleshooting.
	// example: open_settings
	Action string `json:"action" example:"open_settings"`
}

// DispositionResponse is returned by /messages/classify and /messages/recover.
type DispositionResponse struct {
	// example: msg_01
	MessageID string `json:"message_id" example:"msg_01"`
	// One of none, interrupted, auth_error, generic_error.
	// example: auth_error
	Disposition string `json:"disposition" example:"auth_error"`
	// Absent when disposition is none.
	Surface *Surface `json:"surface,omitempty"`
	// True when /messages/recover fired an action.
	Executed bool `json:"executed,omitempty"`
}

// UIState mirrors the navigation collaborator state.
type UIState struct {
	// example: openai
	SelectedSettingScreen string `json:"selected_setting_screen" example:"openai"`
	// example: false
	ModalTroubleShooting bool `json:"modal_troubleshooting" example:"false"`
}

// EventRecord is one recorded side effect of a recovery action.
type EventRecord struct {
	// example: 6f1c2a4e-3b7d-4a52-9c57-1f0b8e2d9a10
	ID string `json:"id" example:"6f1c2a4e-3b7d-4a52-9c57-1f0b8e2d9a10"`
	// One of resend_requested, resend_sent, resend_failed,
	// settings_screen_selected, troubleshooting_modal.
	// example: resend_requested
	Name      string         `json:"name" example:"resend_requested"`
	MessageID string         `json:"message_id,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	At        time.Time      `json:"at"`
}

// EventsResponse wraps the recent events returned by GET /events.
type EventsResponse struct {
	// Oldest first.
	Events []EventRecord `json:"events"`
}
