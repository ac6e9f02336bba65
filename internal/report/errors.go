package report

import (
	"errors"
	"fmt"
)

// Hata taksonomisi: doğrulama, bulunamadı, belge üretimi, depolama, çakışma.
// Hatalar tür bilgisiyle handler katmanına kadar taşınır, HTTP eşlemesi
// sadece orada yapılır.

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindGeneration ErrorKind = "generation"
	KindStorage    ErrorKind = "storage"
	KindConflict   ErrorKind = "conflict"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf: hatanın taksonomideki türü. Taksonomi dışı hatalar için boş döner,
// handler bunları 500 olarak ele alır.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
