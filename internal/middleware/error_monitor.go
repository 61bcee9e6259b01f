package middleware

import (
	"net/http"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMonitorMiddleware 统计并记录 HandleError 上报的错误
func ErrorMonitorMiddleware(analytics *errors.ErrorAnalytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			traced := errors.NewTracedError(e.Err, errors.ErrorContext{
				UserID: c.GetInt(ContextUserID),
				Path:   c.Request.URL.Path,
				Method: c.Request.Method,
			})
			analytics.Record(traced)

			fields := []zap.Field{
				zap.Int("error_code", int(traced.Code)),
				zap.String("error_message", traced.Message),
				zap.String("path", traced.Context.Path),
				zap.String("method", traced.Context.Method),
				zap.Int("user_id", traced.Context.UserID),
			}
			if traced.Err != nil {
				fields = append(fields, zap.Error(traced.Err))
			}

			if traced.Status() >= http.StatusInternalServerError {
				util.Logger.Error("请求处理错误", fields...)
			} else {
				util.Logger.Info("请求被拒绝", fields...)
			}
		}
	}
}

// RequestLogger 记录每个请求的耗时和状态码
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		util.Logger.Info("请求完成",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
