package recovery

// Classify maps a message's status and error code to a disposition. It is
// total: unknown statuses yield DispositionNone and unknown error codes
// yield DispositionGenericError.
func Classify(m Message) Disposition {
	switch m.Status {
	case StatusStopped:
		return DispositionInterrupted
	case StatusError:
		return classifyError(m.ErrorCode)
	default:
		return DispositionNone
	}
}

func classifyError(code ErrorCode) Disposition {
	switch code {
	case ErrorCodeInvalidAPIKey:
		return DispositionAuthError
	case ErrorCodeUnknown:
		return DispositionGenericError
	default:
		// Unrecognized and missing codes share the generic troubleshooting path.
		return DispositionGenericError
	}
}
