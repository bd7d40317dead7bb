package api

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from the server's machine-readable error codes.
// Callers branch on these with errors.Is; the wrapped message carries the
// server's human-readable text.
var (
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUnauthorized              = errors.New("session is not valid")
	ErrOTPInvalidOrExpired       = errors.New("otp invalid or expired")
	ErrOTPDispatchFailed         = errors.New("otp dispatch failed")
	ErrEmailAlreadyRegistered    = errors.New("email already registered")
	ErrAttachmentTooLarge        = errors.New("attachment too large")
	ErrUnsupportedAttachmentType = errors.New("unsupported attachment type")
	ErrServerUnavailable         = errors.New("server unavailable")
)

// RemoteError is a server-reported failure that does not map to a sentinel.
type RemoteError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error %s", e.Code)
}

// codeToError maps envelope error codes to sentinel errors.
var codeToError = map[string]error{
	"INVALID_CREDENTIALS":         ErrInvalidCredentials,
	"TOKEN_REQUIRED":              ErrUnauthorized,
	"TOKEN_INVALID":               ErrUnauthorized,
	"USER_ACCESS_ONLY":            ErrUnauthorized,
	"ADMIN_ACCESS_ONLY":           ErrUnauthorized,
	"OTP_INVALID_OR_EXPIRED":      ErrOTPInvalidOrExpired,
	"OTP_DISPATCH_FAILED":         ErrOTPDispatchFailed,
	"EMAIL_ALREADY_REGISTERED":    ErrEmailAlreadyRegistered,
	"ATTACHMENT_TOO_LARGE":        ErrAttachmentTooLarge,
	"UNSUPPORTED_ATTACHMENT_TYPE": ErrUnsupportedAttachmentType,
}

func decodeError(code, message string, fields map[string]string) error {
	if sentinel, ok := codeToError[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, message)
	}
	return &RemoteError{Code: code, Message: message, Fields: fields}
}
