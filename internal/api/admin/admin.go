package admin

import (
	"petshop-backend/internal/errors"
	"petshop-backend/internal/middleware"
	"petshop-backend/internal/service"
	"petshop-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 管理端接口
type AdminHandler struct {
	statsService service.StatsServiceInterface
	secret       string
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(statsService service.StatsServiceInterface, secret string) *AdminHandler {
	return &AdminHandler{statsService: statsService, secret: secret}
}

type verifyRequest struct {
	Password string `json:"password" binding:"required"`
}

// Verify 前端管理页登录前校验管理密码
func (h *AdminHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	if !middleware.CheckAdminSecret(h.secret, req.Password) {
		util.Logger.Warn("管理密码校验失败", zap.String("client_ip", c.ClientIP()))
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "Invalid admin password"))
		return
	}
	errors.HandleSuccess(c, gin.H{"verified": true}, "Admin verified")
}

func (h *AdminHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.statsService.GetSystemStats(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, stats, "")
}
