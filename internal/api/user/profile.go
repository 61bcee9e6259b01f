package user

import (
	"petshop-backend/internal/api"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService service.UserServiceInterface
}

func NewProfileHandler(userService service.UserServiceInterface) *ProfileHandler {
	return &ProfileHandler{userService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, profile, "")
}

func (h *ProfileHandler) ChangeFirstName(c *gin.Context) {
	var req model.ChangeFirstNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	profile, err := h.userService.ChangeFirstName(c.Request.Context(), api.UserID(c), req.FirstName)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, profile, "First name updated")
}

func (h *ProfileHandler) ChangeLastName(c *gin.Context) {
	var req model.ChangeLastNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	profile, err := h.userService.ChangeLastName(c.Request.Context(), api.UserID(c), req.LastName)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, profile, "Last name updated")
}

// ChangeEmail 返回新令牌，旧令牌失效
func (h *ProfileHandler) ChangeEmail(c *gin.Context) {
	var req model.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	resp, err := h.userService.ChangeEmail(c.Request.Context(), api.UserID(c), req.Email, c.GetString("token"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, resp, "Email updated")
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), api.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "Password updated")
}

func (h *ProfileHandler) ChangePhoto(c *gin.Context) {
	var req model.ChangePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	profile, err := h.userService.ChangePhoto(c.Request.Context(), api.UserID(c), req.Photo)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, profile, "Photo updated")
}
