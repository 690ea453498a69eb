package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the uniform error body: a stable machine code plus a human
// message. Raw internal detail rides along only when verbose errors are
// enabled (non-production).
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

var exposeDetails bool

// SetErrorVerbosity controls whether internal error text is included in
// 500 responses. Called once during router construction.
func SetErrorVerbosity(expose bool) {
	exposeDetails = expose
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, "conflict", message, nil)
}

// RespondInternal logs the underlying error and answers with a sanitized
// body. The raw error string never reaches clients in prod.
func RespondInternal(ctx *gin.Context, message string, err error) {
	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "handler_error",
			"route", ctx.FullPath(),
			"err", err,
		)
	}

	var details interface{}

	if exposeDetails && err != nil {
		details = err.Error()
	}

	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, details)
}
