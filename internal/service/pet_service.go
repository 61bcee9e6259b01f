package service

import (
	"context"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"strings"
	"time"
)

type PetServiceInterface interface {
	GetPets(ctx context.Context, userID int) ([]*model.PetView, error)
	GetPet(ctx context.Context, userID, petID int) (*model.PetView, error)
	CreatePet(ctx context.Context, userID int, input *model.PetInput) (*model.PetView, error)
	UpdatePet(ctx context.Context, userID, petID int, input *model.PetInput) (*model.PetView, error)
	ChangePetPhoto(ctx context.Context, userID, petID int, encoded string) (*model.PetView, error)
	DeletePet(ctx context.Context, userID, petID int) error
}

type PetService struct {
	petRepo interfaces.PetRepository
	photos  PhotoServiceInterface
}

func NewPetService(petRepo interfaces.PetRepository, photos PhotoServiceInterface) *PetService {
	return &PetService{petRepo: petRepo, photos: photos}
}

var _ PetServiceInterface = (*PetService)(nil)

func (s *PetService) GetPets(ctx context.Context, userID int) ([]*model.PetView, error) {
	pets, err := s.petRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load pets", err)
	}
	views := make([]*model.PetView, 0, len(pets))
	for _, p := range pets {
		views = append(views, s.view(ctx, p))
	}
	return views, nil
}

func (s *PetService) GetPet(ctx context.Context, userID, petID int) (*model.PetView, error) {
	pet, err := s.owned(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, pet), nil
}

func (s *PetService) CreatePet(ctx context.Context, userID int, input *model.PetInput) (*model.PetView, error) {
	if err := validateBirthday(input.Birthday); err != nil {
		return nil, err
	}
	now := time.Now()
	pet := &model.Pet{UserID: userID, CreatedAt: now, UpdatedAt: now}
	applyPetInput(pet, input)
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create pet", err)
	}
	return s.view(ctx, pet), nil
}

func (s *PetService) UpdatePet(ctx context.Context, userID, petID int, input *model.PetInput) (*model.PetView, error) {
	if err := validateBirthday(input.Birthday); err != nil {
		return nil, err
	}
	pet, err := s.owned(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	applyPetInput(pet, input)
	pet.UpdatedAt = time.Now()
	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update pet", err)
	}
	return s.view(ctx, pet), nil
}

func (s *PetService) ChangePetPhoto(ctx context.Context, userID, petID int, encoded string) (*model.PetView, error) {
	pet, err := s.owned(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	key, err := s.photos.Save(ctx, encoded)
	if err != nil {
		return nil, err
	}

	var oldKey string
	if pet.Photo != nil {
		oldKey = *pet.Photo
	}
	pet.Photo = &key
	pet.UpdatedAt = time.Now()
	if err := s.petRepo.Update(ctx, pet); err != nil {
		s.photos.Delete(ctx, key)
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update pet", err)
	}
	s.photos.Delete(ctx, oldKey)
	return s.view(ctx, pet), nil
}

func (s *PetService) DeletePet(ctx context.Context, userID, petID int) error {
	pet, err := s.owned(ctx, userID, petID)
	if err != nil {
		return err
	}
	if err := s.petRepo.Delete(ctx, pet.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete pet", err)
	}
	if pet.Photo != nil {
		s.photos.Delete(ctx, *pet.Photo)
	}
	return nil
}

func (s *PetService) owned(ctx context.Context, userID, petID int) (*model.Pet, error) {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find pet", err)
	}
	if pet == nil {
		return nil, errors.NotFound("Pet not found")
	}
	if pet.UserID != userID {
		return nil, errors.Forbidden("You are not allowed to access this pet")
	}
	return pet, nil
}

func (s *PetService) view(ctx context.Context, pet *model.Pet) *model.PetView {
	return &model.PetView{Pet: pet, Photo: inlinePhoto(ctx, s.photos, pet.Photo)}
}

// validateBirthday 服务层再校验一次，绑定层之外的调用也适用
func validateBirthday(birthday *time.Time) error {
	if birthday != nil && !birthday.Before(time.Now()) {
		return errors.Validation("Birthday must be in the past")
	}
	return nil
}

func applyPetInput(p *model.Pet, in *model.PetInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Breed = strings.TrimSpace(in.Breed)
	p.Gender = in.Gender
	p.Birthday = in.Birthday
	p.Age = in.Age
	p.Description = in.Description
}
