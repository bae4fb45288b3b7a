// Package response формирует JSON-конверты ответов шлюза и переводит ошибки
// политики и бэкенда в HTTP-статусы.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response конверт всех ответов шлюза. При успехе заполняется Data, при ошибке Error.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	// StatusOK это значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError это значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// fieldMessages тексты нарушений по тегам validator, которые встречаются в DTO шлюза.
var fieldMessages = map[string]func(fe validator.FieldError) string{
	"required": func(fe validator.FieldError) string {
		return fmt.Sprintf("field %s is a required field", fe.Field())
	},
	"oneof": func(fe validator.FieldError) string {
		return fmt.Sprintf("field %s must be one of: %s", fe.Field(), fe.Param())
	},
	"gte": func(fe validator.FieldError) string {
		return fmt.Sprintf("field %s must be at least %s", fe.Field(), fe.Param())
	},
	"lte": func(fe validator.FieldError) string {
		return fmt.Sprintf("field %s must be at most %s", fe.Field(), fe.Param())
	},
}

// ValidationError собирает нарушения валидации в одно сообщение через запятую.
// Для тегов без своего текста используется общее "is not valid".
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		if format, ok := fieldMessages[fe.ActualTag()]; ok {
			msgs = append(msgs, format(fe))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
	}
	return Error(strings.Join(msgs, ", "))
}
