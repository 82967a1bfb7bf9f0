// Package errors содержит структурированные ошибки с кодом классификации.
// Код позволяет вызывающей стороне отличить ошибку конфигурации правил
// от ошибки формата входного документа или ошибки ввода-вывода.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode классифицирует ошибку.
type ErrorCode string

const (
	// ErrCodeConfiguration: поле записи не имеет правила, либо конфигурация некорректна.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeFormat: входной документ не является массивом JSON-объектов.
	ErrCodeFormat ErrorCode = "FORMAT"
	// ErrCodeIO: ошибка чтения или записи файла.
	ErrCodeIO ErrorCode = "IO"
	// ErrCodeInvalidRequest: некорректные аргументы командной строки.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// StructuredError хранит код, сообщение, причину и контекст для диагностики.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает причину для errors.Is / errors.As.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Context: context}
}

func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// HasCode проверяет, содержит ли цепочка ошибок StructuredError с указанным кодом.
func HasCode(err error, code ErrorCode) bool {
	var se *StructuredError
	if !stderrors.As(err, &se) {
		return false
	}
	return se.Code == code
}
