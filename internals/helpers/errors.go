// file: internals/helpers/errors.go
package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Domain error kinds
=================================*/

type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindDuplicate  ErrorKind = "duplicate"
	ErrKindConflict   ErrorKind = "conflict"
	ErrKindInternal   ErrorKind = "internal"
)

// DomainError carries a kind for transport mapping plus the underlying cause.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Cause }

func ValidationErr(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundErr(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func DuplicateErr(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrKindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func ConflictErr(format string, args ...any) *DomainError {
	return &DomainError{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func InternalErr(msg string, cause error) *DomainError {
	return &DomainError{Kind: ErrKindInternal, Message: msg, Cause: cause}
}

// KindOf returns the kind of err, or ErrKindInternal for plain errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrKindInternal
}

func statusForKind(k ErrorKind) int {
	switch k {
	case ErrKindValidation:
		return fiber.StatusUnprocessableEntity
	case ErrKindNotFound:
		return fiber.StatusNotFound
	case ErrKindDuplicate, ErrKindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// JsonDomainError maps a service error to the standard error envelope.
// Non-domain errors fall back to 500 with the original message.
func JsonDomainError(c *fiber.Ctx, err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return JsonError(c, statusForKind(de.Kind), de.Message)
	}
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* ===============================
   Driver error sniffing
=================================*/

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Matches the strings the postgres driver emits for SQLSTATE 23505.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
