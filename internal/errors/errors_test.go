package errors

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := NotFoundf("profile %q not found", "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, `profile "ghost" not found`, err.Error())
}

func TestWrap(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, CodeInternal, "failed to save profiles")

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "failed to save profiles: unexpected EOF", err.Error())
	assert.Equal(t, "failed to save profiles", err.Message)
}

func TestWrappedDomainErrorIsFound(t *testing.T) {
	err := errors.Join(errors.New("other"), RateLimited("slow down"))

	var domainErr *Error
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeRateLimited, domainErr.Code)
}

func TestWithDetails_Copies(t *testing.T) {
	base := RateLimited("slow down")
	withDetails := base.WithDetails(map[string]int{"retry_after_seconds": 30})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]int{"retry_after_seconds": 30}, withDetails.Details)
	assert.Equal(t, base.Message, withDetails.Message)
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeNotFound:    http.StatusNotFound,
		CodeValidation:  http.StatusBadRequest,
		CodeConflict:    http.StatusConflict,
		CodeRateLimited: http.StatusTooManyRequests,
		CodeUnavailable: http.StatusServiceUnavailable,
		CodeInternal:    http.StatusInternalServerError,
		Code("BOGUS"):   http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.HTTPStatus(), code)
		assert.Equal(t, want, (&Error{Code: code}).HTTPStatus(), code)
	}
}
