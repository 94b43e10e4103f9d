package errinfo

// ErrorInfo is the structured error envelope returned to calling agents.
// Phase tells the caller how far the operation got before failing.
type ErrorInfo struct {
	ErrorCode string   `json:"error_code"`
	Phase     string   `json:"phase,omitempty"`
	Retryable bool     `json:"retryable"`
	Actions   []string `json:"actions,omitempty"`
	Document  string   `json:"document,omitempty"`
	Detail    string   `json:"detail,omitempty"`
}

const (
	CodeDocNotFound      = "DOC_NOT_FOUND"
	CodeDocCorrupt       = "DOC_CORRUPT"
	CodeInvalidIndex     = "INVALID_INDEX"
	CodeInvalidRange     = "INVALID_RANGE"
	CodeAnchorNotFound   = "ANCHOR_NOT_FOUND"
	CodeHeaderNotFound   = "HEADER_NOT_FOUND"
	CodeStyleNotFound    = "STYLE_NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeFileReadFailed   = "FILE_READ_FAILED"
	CodeFileWriteFailed  = "FILE_WRITE_FAILED"
)

const (
	ActionRetry       = "retry"
	ActionCheckPath   = "check_path"
	ActionInspectDoc  = "inspect_document"
	ActionFixArgument = "fix_argument"
)

const (
	PhaseLoad   = "load"
	PhaseLocate = "locate"
	PhaseMutate = "mutate"
	PhaseSave   = "save"
)

func DocNotFound(path string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeDocNotFound,
		Phase:     PhaseLoad,
		Retryable: false,
		Actions:   []string{ActionCheckPath},
		Document:  path,
	}
}

func DocCorrupt(path, detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeDocCorrupt,
		Phase:     PhaseLoad,
		Retryable: false,
		Document:  path,
		Detail:    detail,
	}
}

func InvalidIndex(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeInvalidIndex,
		Phase:     PhaseLocate,
		Retryable: false,
		Actions:   []string{ActionInspectDoc},
		Detail:    detail,
	}
}

func InvalidRange(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeInvalidRange,
		Phase:     PhaseLocate,
		Retryable: false,
		Actions:   []string{ActionInspectDoc},
		Detail:    detail,
	}
}

func AnchorNotFound(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeAnchorNotFound,
		Phase:     PhaseLocate,
		Retryable: false,
		Actions:   []string{ActionInspectDoc},
		Detail:    detail,
	}
}

func HeaderNotFound(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeHeaderNotFound,
		Phase:     PhaseLocate,
		Retryable: false,
		Actions:   []string{ActionInspectDoc},
		Detail:    detail,
	}
}

func StyleNotFound(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeStyleNotFound,
		Phase:     PhaseMutate,
		Retryable: false,
		Actions:   []string{ActionInspectDoc},
		Detail:    detail,
	}
}

func ValidationFailed(phase, detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeValidationFailed,
		Phase:     phase,
		Retryable: false,
		Actions:   []string{ActionFixArgument},
		Detail:    detail,
	}
}

func FileReadFailed(path, detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeFileReadFailed,
		Phase:     PhaseLoad,
		Retryable: true,
		Actions:   []string{ActionRetry},
		Document:  path,
		Detail:    detail,
	}
}

func FileWriteFailed(path, detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeFileWriteFailed,
		Phase:     PhaseSave,
		Retryable: true,
		Actions:   []string{ActionRetry},
		Document:  path,
		Detail:    detail,
	}
}
