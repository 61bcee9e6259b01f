package product

import (
	"petshop-backend/internal/api"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductServiceInterface
}

func NewProductHandler(productService service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService}
}

// FilterProducts 参数可重复或用逗号分隔，例如 ?size=S,M&size=L
func (h *ProductHandler) FilterProducts(c *gin.Context) {
	filter := model.ProductFilter{
		Colors: queryList(c, "color"),
		Search: c.Query("search"),
	}
	for _, s := range queryList(c, "size") {
		filter.Sizes = append(filter.Sizes, model.Size(s))
	}
	for _, p := range queryList(c, "pet") {
		filter.PetTypes = append(filter.PetTypes, model.PetType(p))
	}

	products, err := h.productService.FindProducts(c.Request.Context(), filter)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, products, "")
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, product, "")
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input model.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, product, "Product created")
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	var input model.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, product, "Product updated")
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}

func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
