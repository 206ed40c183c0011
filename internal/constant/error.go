package constant

import "fmt"

// Error 错误接口
type Error interface {
	error
	Code() int
	Message() string
	WithData(data interface{}) Error
	Wrap(cause error) Error
	Unwrap() error
}

// CustomError 自定义错误实现
type CustomError struct {
	code    int
	message string
	data    interface{}
	cause   error
}

func (e *CustomError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("code: %d, message: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

func (e *CustomError) Data() interface{} {
	return e.data
}

func (e *CustomError) WithData(data interface{}) Error {
	e.data = data
	return e
}

// Wrap 附加底层原因，errors.Is / errors.As 可穿透
func (e *CustomError) Wrap(cause error) Error {
	e.cause = cause
	return e
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// NewError 创建错误
func NewError(code int) Error {
	if info, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: info.EN}
	}
	return &CustomError{code: code, message: "unknown error"}
}

// GetErrorInfo 获取错误信息
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}
