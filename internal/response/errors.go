package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrUserAccessOnly     ErrCode = "USER_ACCESS_ONLY"
	ErrAdminAccessOnly    ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Registration & OTP ────────────────────────────────────────────
	ErrOTPInvalidOrExpired    ErrCode = "OTP_INVALID_OR_EXPIRED"
	ErrOTPDispatchFailed      ErrCode = "OTP_DISPATCH_FAILED"
	ErrEmailAlreadyRegistered ErrCode = "EMAIL_ALREADY_REGISTERED"

	// ─── Attachments ───────────────────────────────────────────────────
	ErrAttachmentTooLarge   ErrCode = "ATTACHMENT_TOO_LARGE"
	ErrUnsupportedFileType  ErrCode = "UNSUPPORTED_ATTACHMENT_TYPE"
	ErrAttachmentUnreadable ErrCode = "ATTACHMENT_UNREADABLE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or has expired."
	case ErrUserAccessOnly:
		return "This resource is restricted to interns."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Registration & OTP ────────────────────────────────────────────
	case ErrOTPInvalidOrExpired:
		return "The verification code is invalid or has expired. Please request a new one."
	case ErrOTPDispatchFailed:
		return "The verification email could not be sent. Please try again."
	case ErrEmailAlreadyRegistered:
		return "An account with this email already exists."

	// ─── Attachments ───────────────────────────────────────────────────
	case ErrAttachmentTooLarge:
		return "The attached file exceeds the size limit."
	case ErrUnsupportedFileType:
		return "The attached file type is not supported."
	case ErrAttachmentUnreadable:
		return "The attached file could not be decoded."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
