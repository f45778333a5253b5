// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков.
//
// Успешный ответ: {"statusCode", "message", "data", "error": null}.
// Ответ с ошибкой: {"statusCode", "message", "error", "data": null}.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// DefaultErrorMessage подставляется, если у ошибки нет сообщения.
const DefaultErrorMessage = "Bad Request"

// UpstreamErrorMessage отдаётся клиенту, если удалённый сервис недоступен.
const UpstreamErrorMessage = "booking service unavailable"

// Response описывает стандартную структуру JSON-ответа сервера.
// Поля Data и Error всегда сериализуются, пустое значение выводится как null.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Error      any    `json:"error"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"Bad Request"`
	Error      string `json:"error" example:"invalid request body"`
	Data       any    `json:"data" swaggertype:"object"`
}

// statusCoder реализуют ошибки, которые знают свой HTTP-статус.
type statusCoder interface {
	StatusCode() int
}

// statuser — альтернативное имя того же признака, как у ошибок внешних клиентов.
type statuser interface {
	Status() int
}

// clientMessager реализуют ошибки, текст которых можно показать клиенту как есть.
type clientMessager interface {
	ClientMessage() string
}

// Error — ошибка с явно заданным статусом и сообщением для клиента.
type Error struct {
	Code    int
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

// StatusCode возвращает HTTP-статус ошибки.
func (e *Error) StatusCode() int { return e.Code }

// NewError создаёт ошибку со статусом и сообщением.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError оборачивает внутреннюю ошибку, скрывая её текст за сообщением.
func WrapError(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// OK формирует успешный ответ.
func OK(statusCode int, message string, data any) Response {
	return Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Error:      nil,
	}
}

// OKWithData формирует успешный ответ со статусом 200 и сообщением "OK".
func OKWithData(data any) Response {
	return OK(http.StatusOK, "OK", data)
}

// FromError формирует ответ по ошибке. Статус берётся из StatusCode() или Status()
// ошибки, по умолчанию 400. Сообщение — ClientMessage() ошибки, если он есть,
// иначе её текст или "Bad Request".
func FromError(err error) Response {
	code := http.StatusBadRequest
	message := ""

	var withMessage *Error
	var cm clientMessager
	switch {
	case errors.As(err, &withMessage):
		message = withMessage.Message
	case errors.As(err, &cm):
		message = cm.ClientMessage()
	case err != nil:
		message = err.Error()
	}

	var sc statusCoder
	var st statuser
	switch {
	case errors.As(err, &sc) && sc.StatusCode() != 0:
		code = sc.StatusCode()
	case errors.As(err, &st) && st.Status() != 0:
		code = st.Status()
	}

	if message == "" {
		message = DefaultErrorMessage
	}
	return Response{
		StatusCode: code,
		Message:    message,
		Error:      message,
		Data:       nil,
	}
}

// ValidationError формирует ответ 422 на основе ошибок валидации.
// Каждое нарушение превращается в человекочитаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	message := strings.Join(msgs, ", ")
	return Response{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    message,
		Error:      msgs,
		Data:       nil,
	}
}

// Render пишет ответ с кодом из поля StatusCode.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	render.Status(r, resp.StatusCode)
	render.JSON(w, r, resp)
}

// Fail пишет ответ с ошибкой.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	Render(w, r, FromError(err))
}

// FailUpstream пишет ответ на ошибку вызова удалённого сервиса. Ошибки без
// собственного статуса (таймаут, обрыв соединения) превращаются в 502.
func FailUpstream(w http.ResponseWriter, r *http.Request, err error) {
	var sc statusCoder
	var st statuser
	if errors.As(err, &sc) || errors.As(err, &st) {
		Fail(w, r, err)
		return
	}
	Fail(w, r, WrapError(http.StatusBadGateway, UpstreamErrorMessage, err))
}

// Invalid пишет ответ на ошибку валидации. Ошибки другого типа пишутся как 400.
func Invalid(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		Render(w, r, ValidationError(verrs))
		return
	}
	Fail(w, r, NewError(http.StatusBadRequest, "invalid request"))
}
