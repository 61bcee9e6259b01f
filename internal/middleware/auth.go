package middleware

import (
	"context"
	"net/http"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/util"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "user_id"
	ContextToken  = "token"
)

// TokenResolver 把令牌解析为用户ID
type TokenResolver interface {
	ResolveUserID(ctx context.Context, token string) (int, error)
}

// AuthMiddleware 解析 Bearer 令牌并写入用户ID。
// 令牌无效时不设置认证信息，由 RequireAuth 拒绝；服务端故障直接返回 500。
func AuthMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userID, err := resolver.ResolveUserID(ctx, token)
		if err != nil {
			if errors.StatusOf(errors.CodeOf(err)) >= http.StatusInternalServerError {
				errors.HandleError(c, err)
				return
			}
			util.Logger.Debug("令牌验证失败",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequireAuth 没有认证信息时返回 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "Authentication required"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
