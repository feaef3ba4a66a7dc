package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"shoplite/internal/errors"
)

// ErrorResponse is the wire shape for every error. Stack carries diagnostic
// detail (wrapped cause chain) and is populated only in development mode.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// debug controls whether error responses expose internal detail. Set once at
// startup from the environment; production-like modes keep it off.
var debug bool

func Init(development bool) {
	debug = development
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// Error maps an error to its HTTP outcome. AppErrors keep their status and
// message; anything else is a generic 500 so internals never leak.
func Error(w http.ResponseWriter, err error) {

	statusCode := http.StatusInternalServerError
	resp := ErrorResponse{Message: "An unexpected error occurred"}

	if appErr, ok := errors.IsAppError(err); ok {

		statusCode = appErr.StatusCode
		resp.Message = appErr.Message

		if debug {
			resp.Stack = diagnostic(appErr)
		}

	} else if debug {
		resp.Stack = err.Error()
	}

	WriteJson(w, statusCode, resp)
}

// NotFoundRoute is the fallback body for unmatched paths.
func NotFoundRoute(w http.ResponseWriter, r *http.Request) {
	WriteJson(w, http.StatusNotFound, ErrorResponse{
		Message: fmt.Sprintf("Not Found - %s", r.URL.Path),
	})
}

func diagnostic(appErr *errors.AppError) string {

	detail := appErr.Detail

	if appErr.Err != nil {
		if detail != "" {
			detail += ": "
		}

		detail += appErr.Err.Error()
	}

	return detail
}
