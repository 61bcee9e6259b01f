package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const genericMessage = "An unexpected error occurred"

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Code      ErrorCode         `json:"code"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// SuccessResponse 定义成功响应结构
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrCache:    http.StatusInternalServerError,
	ErrStorage:  http.StatusInternalServerError,

	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusConflict,

	// 业务错误 (4000-4999)
	ErrEmptyCart:    http.StatusBadRequest,
	ErrInvalidCard:  http.StatusBadRequest,
	ErrInvalidPhoto: http.StatusBadRequest,
}

// StatusOf 返回错误码对应的HTTP状态码
func StatusOf(code ErrorCode) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleError 统一处理错误响应
func HandleError(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		appErr = Wrap(ErrInternal, genericMessage, err)
	}
	// 交给错误监控中间件记录日志和统计
	_ = c.Error(appErr)

	status := StatusOf(appErr.Code)
	resp := ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Code:      appErr.Code,
		Message:   appErr.Message,
		Path:      c.Request.URL.Path,
	}

	// 5xx 不向客户端暴露内部细节
	if status >= http.StatusInternalServerError {
		resp.Message = genericMessage
	}

	if len(appErr.Fields) > 0 {
		resp.Error = "Validation Failed"
		resp.Errors = appErr.Fields
	}

	c.AbortWithStatusJSON(status, resp)
}

// HandleSuccess 统一处理成功响应
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

// HandleCreated 资源创建成功
func HandleCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

// HandleNoContent 操作成功且无返回内容
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessResponse{
		Code:    status,
		Message: message,
		Data:    data,
	})
}
