package models

// ValidationError is the only error GenerateDesign ever returns to a
// caller. Fields maps the offending field name to the failed rule.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
