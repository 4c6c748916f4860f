package dto

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minervahq/minerva/pkg/errors"
)

// APIResponse is the common response envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO carries a structured error in the envelope.
type ErrorDTO struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Description string            `json:"description,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

// SendSuccess writes a success envelope.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, &APIResponse{
		Success:   true,
		Data:      data,
		TraceID:   c.GetString("trace_id"),
		Timestamp: time.Now().Unix(),
	})
}

// SendError writes an error envelope. AppErrors keep their code and HTTP
// status; anything else becomes an opaque internal error.
func SendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	errorDTO := &ErrorDTO{
		Code:    errors.ErrCodeInternal,
		Message: "internal server error",
	}

	if appErr, ok := errors.AsAppError(err); ok {
		status = appErr.HTTPStatus
		errorDTO = &ErrorDTO{
			Code:        appErr.Code,
			Message:     appErr.Message,
			Description: appErr.Description,
			Details:     appErr.Details,
		}
	}

	c.JSON(status, &APIResponse{
		Success:   false,
		Error:     errorDTO,
		TraceID:   c.GetString("trace_id"),
		Timestamp: time.Now().Unix(),
	})
}
