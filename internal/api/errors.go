package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
)

// APIError is the error half of the response envelope. It implements
// huma.StatusError so handlers can return it directly.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Field errors or limits, depending on the code"`
}

func (e *APIError) Error() string { return e.Message }

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int { return e.status }

// ContentType implements huma.ContentTypeFilter.
func (e *APIError) ContentType(string) string { return "application/json" }

func fromDomain(err *domainerrors.Error) *APIError {
	return &APIError{
		status:  err.HTTPStatus(),
		Code:    string(err.Code),
		Message: err.Message,
		Details: err.Details,
	}
}

// RegisterErrorHandler makes huma build APIErrors, for its own validation
// failures as well as ours. A domain error among errs wins; otherwise the
// code follows the status and each error message becomes a detail.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		var details []string
		for _, err := range errs {
			if err == nil {
				continue
			}
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return fromDomain(domainErr)
			}
			details = append(details, err.Error())
		}

		apiErr := &APIError{status: status, Code: statusToCode(status), Message: message}
		if len(details) > 0 {
			apiErr.Details = details
		}
		return apiErr
	}
}

var statusCodes = map[int]domainerrors.Code{
	http.StatusBadRequest:          domainerrors.CodeValidation,
	http.StatusUnprocessableEntity: domainerrors.CodeValidation,
	http.StatusNotFound:            domainerrors.CodeNotFound,
	http.StatusConflict:            domainerrors.CodeConflict,
	http.StatusTooManyRequests:     domainerrors.CodeRateLimited,
	http.StatusServiceUnavailable:  domainerrors.CodeUnavailable,
}

// statusToCode picks the domain code for an HTTP status. Anything unlisted
// is INTERNAL.
func statusToCode(status int) string {
	if code, ok := statusCodes[status]; ok {
		return string(code)
	}
	return string(domainerrors.CodeInternal)
}

// Envelope is the JSON wrapper around every API response body.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps response bodies in an Envelope. Errors land in
// the error field, everything else in data.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case Envelope, *Envelope:
		return v, nil
	case *APIError:
		return Envelope{Error: body}, nil
	case huma.StatusError:
		code := body.GetStatus()
		return Envelope{Error: &APIError{status: code, Code: statusToCode(code), Message: body.Error()}}, nil
	}
	failed := status != "" && (status[0] == '4' || status[0] == '5')
	return Envelope{Success: !failed, Data: v}, nil
}
