package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotAnImage       ErrorCode = "NOT_AN_IMAGE"
	ErrCodePhotoLimit       ErrorCode = "PHOTO_LIMIT_EXCEEDED"

	ErrCodeItemNotFound       ErrorCode = "ITEM_NOT_FOUND"
	ErrCodePersonNotFound     ErrorCode = "PERSON_NOT_FOUND"
	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeAssignmentNotFound ErrorCode = "ASSIGNMENT_NOT_FOUND"
	ErrCodePhotoNotFound      ErrorCode = "PHOTO_NOT_FOUND"

	ErrCodeItemExists        ErrorCode = "ITEM_ID_EXISTS"
	ErrCodeUsernameExists    ErrorCode = "USERNAME_EXISTS"
	ErrCodeAlreadyAssigned   ErrorCode = "ITEM_ALREADY_ASSIGNED"
	ErrCodeHolderMismatch    ErrorCode = "HOLDER_MISMATCH"
	ErrCodeDepartmentInUse   ErrorCode = "DEPARTMENT_IN_USE"
	ErrCodePersonHasDevices  ErrorCode = "PERSON_HAS_ACTIVE_ITEMS"
	ErrCodeDepartmentExists  ErrorCode = "DEPARTMENT_EXISTS"
	ErrCodeEmpCodeExists     ErrorCode = "EMP_CODE_EXISTS"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeAdminRequired      ErrorCode = "ADMIN_REQUIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrItemNotFound       = NewNotFoundError("Item not found", ErrCodeItemNotFound)
	ErrPersonNotFound     = NewNotFoundError("Person not found", ErrCodePersonNotFound)
	ErrDepartmentNotFound = NewNotFoundError("Department not found", ErrCodeDepartmentNotFound)
	ErrAssignmentNotFound = NewNotFoundError("Active assignment not found", ErrCodeAssignmentNotFound)
	ErrPhotoNotFound      = NewNotFoundError("Photo not found", ErrCodePhotoNotFound)

	ErrItemExists       = NewConflictError("Item ID already exists", ErrCodeItemExists)
	ErrUsernameExists   = NewConflictError("Username already exists", ErrCodeUsernameExists)
	ErrAlreadyAssigned  = NewConflictError("Item already has an active assignment", ErrCodeAlreadyAssigned)
	ErrHolderMismatch   = NewConflictError("Item is not held by the given person", ErrCodeHolderMismatch)
	ErrDepartmentInUse  = NewConflictError("Department still has people assigned", ErrCodeDepartmentInUse)
	ErrPersonHasDevices = NewConflictError("Person still holds assigned items", ErrCodePersonHasDevices)
	ErrDepartmentExists = NewConflictError("Department name already exists", ErrCodeDepartmentExists)
	ErrEmpCodeExists    = NewConflictError("Employee code already exists", ErrCodeEmpCodeExists)

	ErrNotAnImage = NewValidationError("Please upload an image file", ErrCodeNotAnImage)

	ErrInvalidCredentials = NewUnauthorizedError("Incorrect username or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrAdminRequired      = NewForbiddenError("Admin role required", ErrCodeAdminRequired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
