package registration

import "fmt"

type ErrorReason string

const (
	REASON_NAME_REQUIRED               ErrorReason = "NAME_REQUIRED"
	REASON_INVALID_AGE                 ErrorReason = "INVALID_AGE"
	REASON_INVALID_PHONE               ErrorReason = "INVALID_PHONE"
	REASON_INVALID_DOCUMENT            ErrorReason = "INVALID_DOCUMENT"
	REASON_GUARDIAN_NAME_REQUIRED      ErrorReason = "GUARDIAN_NAME_REQUIRED"
	REASON_INVALID_GUARDIAN_DOCUMENT   ErrorReason = "INVALID_GUARDIAN_DOCUMENT"
	REASON_REGISTRATION_ALREADY_EXISTS ErrorReason = "REGISTRATION_ALREADY_EXISTS"
	REASON_REGISTRATION_DOES_NOT_EXIST ErrorReason = "REGISTRATION_DOES_NOT_EXIST"
	REASON_FAILED_TO_WRITE             ErrorReason = "FAILED_TO_WRITE"
	REASON_FAILED_TO_FETCH             ErrorReason = "FAILED_TO_FETCH"
	REASON_STORE_UNAVAILABLE           ErrorReason = "STORE_UNAVAILABLE"
)

// IsValidation reports whether the reason is an eligibility rule
// violation, as opposed to a duplicate identity or a store failure.
func (r ErrorReason) IsValidation() bool {
	switch r {
	case REASON_NAME_REQUIRED,
		REASON_INVALID_AGE,
		REASON_INVALID_PHONE,
		REASON_INVALID_DOCUMENT,
		REASON_GUARDIAN_NAME_REQUIRED,
		REASON_INVALID_GUARDIAN_DOCUMENT:
		return true
	}
	return false
}

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newRegistrationError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewNameRequiredError() *Error {
	return newRegistrationError(REASON_NAME_REQUIRED, "name required", nil)
}

func NewInvalidAgeError() *Error {
	return newRegistrationError(REASON_INVALID_AGE, "invalid age", nil)
}

func NewInvalidPhoneError() *Error {
	return newRegistrationError(REASON_INVALID_PHONE, "invalid phone", nil)
}

func NewInvalidDocumentError() *Error {
	return newRegistrationError(REASON_INVALID_DOCUMENT, "invalid document", nil)
}

func NewGuardianNameRequiredError() *Error {
	return newRegistrationError(REASON_GUARDIAN_NAME_REQUIRED, "guardian name required", nil)
}

func NewInvalidGuardianDocumentError() *Error {
	return newRegistrationError(REASON_INVALID_GUARDIAN_DOCUMENT, "invalid guardian document", nil)
}

func NewRegistrationAlreadyExistsError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_ALREADY_EXISTS, message, cause)
}

func NewRegistrationDoesNotExistError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_DOES_NOT_EXIST, message, cause)
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewStoreUnavailableError(message string, cause error) *Error {
	return newRegistrationError(REASON_STORE_UNAVAILABLE, message, cause)
}
