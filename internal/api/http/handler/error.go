package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/codepad-server/internal/model"
	"github.com/dtroode/codepad-server/internal/service"
)

// statusFor maps an error to an HTTP status and a user-visible message.
func statusFor(err error) (int, string) {
	var badRequest *badRequestError

	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, badRequest.message
	case errors.Is(err, model.ErrInvalidSnippetID),
		errors.Is(err, model.ErrInvalidCode),
		errors.Is(err, model.ErrDuplicateIdentity),
		errors.Is(err, model.ErrOTPExpired),
		errors.Is(err, model.ErrOTPMismatch),
		errors.Is(err, model.ErrEmailMismatch),
		errors.Is(err, model.ErrNoChallenge),
		errors.Is(err, model.ErrInvalidState):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrAuthenticationRequired):
		return http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, service.ErrFederationDisabled):
		return http.StatusNotFound, service.ErrFederationDisabled.Error()
	case errors.Is(err, model.ErrDispatchFailure):
		return http.StatusInternalServerError, model.ErrDispatchFailure.Error() + ", please try again"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

var userErrors = []error{
	model.ErrInvalidSnippetID,
	model.ErrInvalidCode,
	model.ErrDuplicateIdentity,
	model.ErrOTPExpired,
	model.ErrOTPMismatch,
	model.ErrEmailMismatch,
	model.ErrNoChallenge,
	model.ErrInvalidState,
	model.ErrInvalidCredentials,
	model.ErrAuthenticationRequired,
}

// rootMessage returns the sentinel's own message, without wrapping context.
func rootMessage(err error) string {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
