package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the API response envelope.
type Response struct {
	Data     any        `json:"data"`
	Error    *ErrorBody `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// ErrorBody is a structured error.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Metadata carries request tracing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ErrCode identifies an API error.
type ErrCode string

const (
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload  ErrCode = "INVALID_PAYLOAD"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrBusy            ErrCode = "BUSY"
	ErrToolLocked      ErrCode = "TOOL_LOCKED"
	ErrNoConversation  ErrCode = "CHAT_NOT_STARTED"
	ErrChatStarted     ErrCode = "CHAT_ALREADY_STARTED"
	ErrStale           ErrCode = "RESULT_DISCARDED"
	ErrUpstream        ErrCode = "UPSTREAM_ERROR"
	ErrInvalidUpstream ErrCode = "INVALID_UPSTREAM_RESPONSE"
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrInternal        ErrCode = "INTERNAL_ERROR"
)

// defaultMessage is used when no localized message is at hand.
func defaultMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrNotFound:
		return "Session not found."
	case ErrBusy:
		return "A request is already in progress."
	case ErrToolLocked:
		return "Complete the study inputs first."
	case ErrNoConversation:
		return "The study assistant has not been started."
	case ErrChatStarted:
		return "The study assistant is already running."
	case ErrStale:
		return "The session changed while the request was running."
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File exceeds the size limit."
	case ErrInternal:
		return "Internal server error."
	default:
		return "Unexpected error."
	}
}

// Success sends data in the envelope.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Data: data, Metadata: buildMetadata(c)})
}

// Fail sends an error with the code's default message.
func Fail(c *gin.Context, status int, code ErrCode) {
	FailWithMessage(c, status, code, defaultMessage(code))
}

// FailWithMessage sends an error with a specific message.
func FailWithMessage(c *gin.Context, status int, code ErrCode, message string) {
	c.JSON(status, Response{
		Error:    &ErrorBody{Code: code, Message: message},
		Metadata: buildMetadata(c),
	})
}

// FailWithFields sends an error with field-level details.
func FailWithFields(c *gin.Context, status int, code ErrCode, message string, fields map[string]string) {
	c.JSON(status, Response{
		Error:    &ErrorBody{Code: code, Message: message, Fields: fields},
		Metadata: buildMetadata(c),
	})
}

// AbortFail aborts the handler chain with an error.
func AbortFail(c *gin.Context, status int, code ErrCode) {
	c.AbortWithStatusJSON(status, Response{
		Error:    &ErrorBody{Code: code, Message: defaultMessage(code)},
		Metadata: buildMetadata(c),
	})
}

// ContextKeyRequestID is the gin context key for the request ID.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every request with an ID, reusing X-Request-ID
// when the client sends one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

func buildMetadata(c *gin.Context) Metadata {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
