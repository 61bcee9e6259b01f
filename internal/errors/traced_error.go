package errors

import "time"

// TracedError 带请求上下文的错误，供错误统计使用
type TracedError struct {
	*AppError
	Timestamp time.Time
	Context   ErrorContext
}

// ErrorContext 错误上下文信息
type ErrorContext struct {
	UserID int
	Path   string
	Method string
}

// NewTracedError 创建带追踪信息的错误
func NewTracedError(err error, ctx ErrorContext) *TracedError {
	appErr, ok := As(err)
	if !ok {
		appErr = Wrap(ErrInternal, genericMessage, err)
	}

	return &TracedError{
		AppError:  appErr,
		Timestamp: time.Now(),
		Context:   ctx,
	}
}

// Status 对应的HTTP状态码
func (e *TracedError) Status() int {
	return StatusOf(e.Code)
}
