package user

import (
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"petshop-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	authService service.AuthServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService}
}

// Signup 处理用户注册请求
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.FromBinding(err))
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, resp, "Signup successful")
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, resp, "Login successful")
}

// Logout 注销当前令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), c.GetString("token")); err != nil {
		errors.HandleError(c, err)
		return
	}
	util.Logger.Info("用户已登出", zap.Int("user_id", c.GetInt("user_id")))
	errors.HandleSuccess(c, nil, "Logout successful")
}
