package dto

// DateLayout is the wire format for calendar dates (ISO-8601 date).
const DateLayout = "2006-01-02"

// ErrorResponse is the structured error body returned by every handler.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
