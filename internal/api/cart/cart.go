package cart

import (
	"petshop-backend/internal/api"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CartHandler 购物车和收藏夹接口
type CartHandler struct {
	cartService     service.CartServiceInterface
	wishlistService service.WishlistServiceInterface
}

func NewCartHandler(cartService service.CartServiceInterface, wishlistService service.WishlistServiceInterface) *CartHandler {
	return &CartHandler{cartService: cartService, wishlistService: wishlistService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	items, err := h.cartService.GetCart(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, items, "")
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req model.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	item, err := h.cartService.AddToCart(c.Request.Context(), api.UserID(c), &req)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, item, "Added to cart")
}

// UpdateQuantity 数量小于等于0时删除并返回 204
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	cartID, err := api.ParamID(c, "cartId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	quantity, convErr := strconv.Atoi(c.Query("quantity"))
	if convErr != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Invalid quantity", convErr))
		return
	}

	item, err := h.cartService.UpdateQuantity(c.Request.Context(), api.UserID(c), cartID, quantity)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if item == nil {
		errors.HandleNoContent(c)
		return
	}
	errors.HandleSuccess(c, item, "Cart updated")
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cartID, err := api.ParamID(c, "cartId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.cartService.RemoveFromCart(c.Request.Context(), api.UserID(c), cartID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), api.UserID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}

func (h *CartHandler) GetCartTotal(c *gin.Context) {
	total, err := h.cartService.GetCartTotal(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"total": total}, "")
}

func (h *CartHandler) GetWishlist(c *gin.Context) {
	items, err := h.wishlistService.GetWishlist(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, items, "")
}

func (h *CartHandler) AddToWishlist(c *gin.Context) {
	productID, err := api.ParamID(c, "productId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	item, err := h.wishlistService.AddToWishlist(c.Request.Context(), api.UserID(c), productID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, item, "Added to wishlist")
}

func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	productID, err := api.ParamID(c, "productId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.wishlistService.RemoveFromWishlist(c.Request.Context(), api.UserID(c), productID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}

func (h *CartHandler) CheckWishlist(c *gin.Context) {
	productID, err := api.ParamID(c, "productId")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	in, err := h.wishlistService.IsInWishlist(c.Request.Context(), api.UserID(c), productID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"in_wishlist": in}, "")
}

func (h *CartHandler) ClearWishlist(c *gin.Context) {
	if err := h.wishlistService.ClearWishlist(c.Request.Context(), api.UserID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}
