package middleware

import (
	"fmt"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/util"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				// 记录堆栈信息
				util.Logger.Error("发生panic",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())))

				errors.HandleError(c, errors.Wrap(errors.ErrInternal, "panic recovered", fmt.Errorf("%v", r)))
			}
		}()
		c.Next()
	}
}
