package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness is shorthand for a validation failure identified by code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func NotFoundErr(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func Forbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func Unauthenticated(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns 0 for errors that are not business errors.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}
