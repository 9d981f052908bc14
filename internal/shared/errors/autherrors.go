package errors

import (
	stderrors "errors"
	"net/http"
)

// Credential and token lifecycle error types. Each maps to a distinct HTTP
// class so clients can tell "try again later" from "stop trying".
const (
	ErrorTypeWrongCredentials    ErrorType = "wrong_credentials"
	ErrorTypeUserNotEnabled      ErrorType = "user_not_enabled"
	ErrorTypeDeviceOwnerMismatch ErrorType = "device_owner_mismatch"
	ErrorTypeTokenExpired        ErrorType = "token_expired"
	ErrorTypeTooManyAttempts     ErrorType = "too_many_attempts"
	ErrorTypeInvalidToken        ErrorType = "invalid_token"
	ErrorTypeNotDeviceToken      ErrorType = "not_device_token"
	ErrorTypeMailSendingFailure  ErrorType = "mail_sending_failure"
)

// AuthError wraps AppError with flags the boundary uses to decide whether a
// failure is worth logging or tracking as a security signal. Expected
// failures like a mistyped password stay out of the error log.
type AuthError struct {
	*AppError
	ShouldLog     bool
	SecurityEvent bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap lets errors.Is and errors.As reach the inner AppError.
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewWrongCredentialsError reports a failed secret comparison. The message
// never reveals which part of the credential pair was wrong.
func NewWrongCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeWrongCredentials,
			Message: "Wrong login credentials",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewUserNotEnabledError reports a login against an account that has not
// completed activation.
func NewUserNotEnabledError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeUserNotEnabled,
			Message: "User not enabled",
			Code:    http.StatusUnauthorized,
			Details: "Verify your account with the activation code first",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewDeviceOwnerMismatchError reports a device pairing attempt by a user who
// does not own the device. Kept distinct from not-found; the message carries
// no device detail.
func NewDeviceOwnerMismatchError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeDeviceOwnerMismatch,
			Message: "Device owner and requesting user are not the same",
			Code:    http.StatusForbidden,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewTokenExpiredError reports a reset code past its expiry timestamp.
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusForbidden,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTooManyAttemptsError reports an exhausted reset code attempt budget.
func NewTooManyAttemptsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTooManyAttempts,
			Message: "Too many attempts",
			Code:    http.StatusTooManyRequests,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewInvalidTokenError reports a missing, mismatched or unverifiable token.
func NewInvalidTokenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidToken,
			Message: "Invalid or missing token",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewNotDeviceTokenError reports a token presented on the device refresh
// path that is not device-scoped.
func NewNotDeviceTokenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeNotDeviceToken,
			Message: "Token is not a device token",
			Code:    http.StatusForbidden,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewMailSendingFailureError reports an outbound mail dispatch failure.
// Token state committed before the dispatch attempt stays committed.
func NewMailSendingFailureError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeMailSendingFailure,
			Message: "Failed to send mail",
			Code:    http.StatusInternalServerError,
			Details: detail,
		},
		ShouldLog:     true,
		SecurityEvent: false,
	}
}

// GetAuthError extracts an AuthError from the error chain, or returns nil.
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError reports whether the failure deserves an error-level log
// entry. Unknown errors default to logging.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent reports whether the failure should be tracked as a
// security event.
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
