package pet

import (
	"petshop-backend/internal/api"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PetHandler struct {
	petService service.PetServiceInterface
}

func NewPetHandler(petService service.PetServiceInterface) *PetHandler {
	return &PetHandler{petService: petService}
}

func (h *PetHandler) ListPets(c *gin.Context) {
	pets, err := h.petService.GetPets(c.Request.Context(), api.UserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, pets, "")
}

func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	pet, err := h.petService.GetPet(c.Request.Context(), api.UserID(c), id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, pet, "")
}

func (h *PetHandler) CreatePet(c *gin.Context) {
	var input model.PetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	pet, err := h.petService.CreatePet(c.Request.Context(), api.UserID(c), &input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleCreated(c, pet, "Pet created")
}

func (h *PetHandler) UpdatePet(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	var input model.PetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	pet, err := h.petService.UpdatePet(c.Request.Context(), api.UserID(c), id, &input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, pet, "Pet updated")
}

// ChangePhoto 照片为 base64 或 data URI
func (h *PetHandler) ChangePhoto(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	var req model.PetPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.FromBinding(err))
		return
	}
	pet, err := h.petService.ChangePetPhoto(c.Request.Context(), api.UserID(c), id, req.Photo)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, pet, "Photo updated")
}

func (h *PetHandler) DeletePet(c *gin.Context) {
	id, err := api.ParamID(c, "id")
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if err := h.petService.DeletePet(c.Request.Context(), api.UserID(c), id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleNoContent(c)
}
