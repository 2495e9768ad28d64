// Package response формирует JSON-ответы об ошибках для HTTP-обработчиков.
//
// Успешные ответы отдают ресурс как есть, ошибки всегда имеют вид
// {"status":"Error","error":"..."}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// StatusError — значение статуса для ответа с ошибкой.
const StatusError = "Error"

// ErrorResponse — тело ответа с ошибкой.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// шаблоны сообщений по тегу валидатора; %[1]s — поле, %[2]s — параметр тега
var validationMessages = map[string]string{
	"required": "field %[1]s is a required field",
	"alphanum": "field %[1]s can contain only numbers and letters",
	"alpha":    "field %[1]s can contain only letters",
	"numeric":  "field %[1]s can contain only numbers",
	"email":    "field %[1]s must be a valid email",
	"gte":      "field %[1]s must be greater than or equal to %[2]s",
	"min":      "field %[1]s must be at least %[2]s characters long",
	"max":      "field %[1]s must be at most %[2]s characters long",
	"len":      "field %[1]s must be exactly %[2]s characters long",
	"oneof":    "field %[1]s must be one of: %[2]s",
}

// ValidationError собирает ошибки валидации в один текст через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		tmpl, ok := validationMessages[err.Tag()]
		if !ok {
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
			continue
		}
		if !strings.Contains(tmpl, "%[2]s") {
			msgs = append(msgs, fmt.Sprintf(tmpl, err.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf(tmpl, err.Field(), err.Param()))
	}
	return Error(strings.Join(msgs, ", "))
}
