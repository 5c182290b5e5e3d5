package recovery

import (
	"strings"

	"advisord/pkg/types"
)

// Status is the lifecycle status of a chat message.
type Status string

const (
	StatusReady   Status = "ready"
	StatusPending Status = "pending"
	StatusStopped Status = "stopped"
	StatusError   Status = "error"
)

// ErrorCode is the failure code carried by a message in StatusError. Values
// outside the constants below are legal and classify as a generic error.
type ErrorCode string

const (
	ErrorCodeInvalidAPIKey ErrorCode = "invalid_api_key"
	ErrorCodeUnknown       ErrorCode = "unknown"
)

// Message is the subset of a chat message the recovery layer reads.
type Message struct {
	ID        string
	ThreadID  string
	Status    Status
	ErrorCode ErrorCode
	// Engine names the provider that produced the message, if known.
	Engine  string
	Content any
}

// FromRecord converts a wire record. Status and code are normalized to lower case.
func FromRecord(r types.MessageRecord) Message {
	return Message{
		ID:        r.ID,
		ThreadID:  r.ThreadID,
		Status:    Status(strings.ToLower(strings.TrimSpace(r.Status))),
		ErrorCode: ErrorCode(strings.ToLower(strings.TrimSpace(r.ErrorCode))),
		Engine:    strings.TrimSpace(r.Engine),
		Content:   r.Content,
	}
}

// Disposition is the recovery category of a terminal message. The zero value is DispositionNone.
type Disposition int

const (
	DispositionNone Disposition = iota
	DispositionInterrupted
	DispositionAuthError
	DispositionGenericError
)

func (d Disposition) String() string {
	switch d {
	case DispositionInterrupted:
		return "interrupted"
	case DispositionAuthError:
		return "auth_error"
	case DispositionGenericError:
		return "generic_error"
	default:
		return "none"
	}
}

// MarshalText encodes the disposition as its string form.
func (d Disposition) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Action is the user affordance a disposition offers.
type Action string

const (
	ActionRegenerate          Action = "regenerate"
	ActionOpenSettings        Action = "open_settings"
	ActionOpenTroubleshooting Action = "open_troubleshooting"
)
