package httperror

import "net/http"

// CommonError is the error shape every usecase returns. Kind is a stable
// discriminator for clients, Message is human readable. Raw database or
// third-party errors must never end up in Message.
type CommonError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *CommonError) Error() string {
	return e.Message
}

const (
	KindValidation   = "validation_error"
	KindConflict     = "conflict"
	KindForbidden    = "authorization_error"
	KindNotFound     = "not_found"
	KindBusinessRule = "business_rule_violation"
	KindDependency   = "dependency_failure"
)

func NewBadRequest() *CommonError {
	return &CommonError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: "Bad request",
	}
}

func NewConflict() *CommonError {
	return &CommonError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: "Conflict",
	}
}

func NewForbidden() *CommonError {
	return &CommonError{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: "Forbidden",
	}
}

func NewNotFound() *CommonError {
	return &CommonError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: "Not found",
	}
}

func NewUnprocessableEntity() *CommonError {
	return &CommonError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindBusinessRule,
		Message: "Unprocessable entity",
	}
}

func NewInternalServerError() *CommonError {
	return &CommonError{
		Code:    http.StatusInternalServerError,
		Kind:    KindDependency,
		Message: "Internal server error",
	}
}
