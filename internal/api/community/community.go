package community

import (
	"petshop-backend/internal/api"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CommunityHandler 商品评论和用户反馈，读取公开，写入需要登录
type CommunityHandler struct {
	commentService  service.CommentServiceInterface
	feedbackService service.FeedbackServiceInterface
}

func NewCommunityHandler(commentService service.CommentServiceInterface, feedbackService service.FeedbackServiceInterface) *CommunityHandler {
	return &CommunityHandler{commentService: commentService, feedbackService: feedbackService}
}

// updateTextInput 修改时先校验归属，文本长度由服务层校验
type updateTextInput struct {
	Text string `json:"text"`
}

func (h *CommunityHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.GetAll(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comments, "")
}

func (h *CommunityHandler) GetComment(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	comment, err := h.commentService.GetByID(c.Request.Context(), id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comment, "")
}

func (h *CommunityHandler) ListProductComments(c *gin.Context) {
	productID, err := api.ParamID(c, "productId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	comments, err := h.commentService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comments, "")
}

func (h *CommunityHandler) ListUserComments(c *gin.Context) {
	userID, err := api.ParamID(c, "userId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	comments, err := h.commentService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comments, "")
}

func (h *CommunityHandler) CreateComment(c *gin.Context) {
	var input model.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), api.UserID(c), &input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, comment, "Comment created")
}

func (h *CommunityHandler) UpdateComment(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	var input updateTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	comment, err := h.commentService.Update(c.Request.Context(), api.UserID(c), id, input.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comment, "Comment updated")
}

func (h *CommunityHandler) DeleteComment(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), api.UserID(c), id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}

func (h *CommunityHandler) ListFeedback(c *gin.Context) {
	list, err := h.feedbackService.GetAll(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, list, "")
}

func (h *CommunityHandler) GetFeedback(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	feedback, err := h.feedbackService.GetByID(c.Request.Context(), id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, feedback, "")
}

func (h *CommunityHandler) ListUserFeedback(c *gin.Context) {
	userID, err := api.ParamID(c, "userId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	list, err := h.feedbackService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, list, "")
}

func (h *CommunityHandler) CreateFeedback(c *gin.Context) {
	var input model.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	feedback, err := h.feedbackService.Create(c.Request.Context(), api.UserID(c), input.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, feedback, "Feedback created")
}

func (h *CommunityHandler) UpdateFeedback(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	var input updateTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	feedback, err := h.feedbackService.Update(c.Request.Context(), api.UserID(c), id, input.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, feedback, "Feedback updated")
}

func (h *CommunityHandler) DeleteFeedback(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.feedbackService.Delete(c.Request.Context(), api.UserID(c), id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}
