package models

// ErrorResponse is the envelope written for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationErrorResponse is returned when a request body fails validation
type ValidationErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// FieldError describes a single invalid field
type FieldError struct {
	Type     string      `json:"type"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
	Value    interface{} `json:"value,omitempty"`
}
