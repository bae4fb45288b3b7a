package policy

import (
	"errors"
	"fmt"
)

// Категории ошибок политики. Конкретная ошибка *Error разворачивается в одну из них,
// поэтому проверять её нужно через errors.Is.
var (
	// ErrInvalidRange числовое значение вне допустимого диапазона или нарушен порядок.
	ErrInvalidRange = errors.New("invalid range")
	// ErrPermissionDenied у вызывающего нет нужного права.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSelfActionForbidden действие направлено на самого вызывающего и запрещено.
	ErrSelfActionForbidden = errors.New("self action forbidden")
	// ErrUnknownState запись подписки вне документированных инвариантов.
	ErrUnknownState = errors.New("unknown state")
)

// Error ошибка политики с человеко-читаемым сообщением.
// Сообщение возвращается клиенту без изменений.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func invalidRange(format string, args ...any) error {
	return newError(ErrInvalidRange, format, args...)
}

func permissionDenied(format string, args ...any) error {
	return newError(ErrPermissionDenied, format, args...)
}

func selfActionForbidden(format string, args ...any) error {
	return newError(ErrSelfActionForbidden, format, args...)
}

func unknownState(format string, args ...any) error {
	return newError(ErrUnknownState, format, args...)
}

// Message возвращает сообщение ошибки политики, если err ей является.
func Message(err error) (string, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Msg, true
	}
	return "", false
}
