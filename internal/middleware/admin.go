package middleware

import (
	"crypto/subtle"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const AdminSecretHeader = "X-Admin-Secret"

// AdminMiddleware 校验管理密钥，未配置密钥时拒绝所有请求
func AdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CheckAdminSecret(secret, c.GetHeader(AdminSecretHeader)) {
			util.Logger.Warn("管理接口访问被拒绝",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("client_ip", c.ClientIP()))
			errors.HandleError(c, errors.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

// CheckAdminSecret 常量时间比较
func CheckAdminSecret(secret, provided string) bool {
	if secret == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) == 1
}
