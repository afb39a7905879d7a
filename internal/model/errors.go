package model

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicateIdentity      = errors.New("an account with this email already exists")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrOTPExpired             = errors.New("verification code has expired")
	ErrOTPMismatch            = errors.New("invalid verification code")
	ErrEmailMismatch          = errors.New("email does not match the verification request")
	ErrNoChallenge            = errors.New("no active verification code")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrDispatchFailure        = errors.New("failed to send verification code")
	ErrInvalidSnippetID       = errors.New("invalid snippet id")
	ErrInvalidCode            = errors.New("code must not contain NUL characters")
	ErrInvalidState           = errors.New("invalid oauth state")
	ErrUnsupportedCredential  = errors.New("unsupported credential")
)
