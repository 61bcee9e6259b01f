package service

import (
	"context"
	stderrors "errors"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID int) (*model.UserProfile, error)
	ChangeFirstName(ctx context.Context, userID int, firstName string) (*model.UserProfile, error)
	ChangeLastName(ctx context.Context, userID int, lastName string) (*model.UserProfile, error)
	ChangeEmail(ctx context.Context, userID int, newEmail, currentToken string) (*model.AuthResponse, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ChangePhoto(ctx context.Context, userID int, encoded string) (*model.UserProfile, error)
}

// UserService 处理当前用户的资料修改
type UserService struct {
	userRepo interfaces.UserRepository
	auth     *AuthService
	photos   PhotoServiceInterface
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, auth *AuthService, photos PhotoServiceInterface) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		photos:   photos,
	}
}

var _ UserServiceInterface = (*UserService)(nil)

func (s *UserService) GetProfile(ctx context.Context, userID int) (*model.UserProfile, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, user), nil
}

func (s *UserService) ChangeFirstName(ctx context.Context, userID int, firstName string) (*model.UserProfile, error) {
	return s.mutate(ctx, userID, func(u *model.User) error {
		u.FirstName = strings.TrimSpace(firstName)
		return nil
	})
}

func (s *UserService) ChangeLastName(ctx context.Context, userID int, lastName string) (*model.UserProfile, error) {
	return s.mutate(ctx, userID, func(u *model.User) error {
		u.LastName = strings.TrimSpace(lastName)
		return nil
	})
}

// ChangeEmail 令牌主体是邮箱，修改后签发新令牌并注销当前令牌
func (s *UserService) ChangeEmail(ctx context.Context, userID int, newEmail, currentToken string) (*model.AuthResponse, error) {
	email := normalizeEmail(newEmail)

	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to check email", err)
		}
		if exists {
			return nil, errors.New(errors.ErrResourceExists, "Email already exists")
		}

		user.Email = email
		if err := s.userRepo.Update(ctx, user); err != nil {
			if stderrors.Is(err, interfaces.ErrDuplicate) {
				return nil, errors.Wrap(errors.ErrResourceExists, "Email already exists", err)
			}
			return nil, errors.Wrap(errors.ErrDatabase, "failed to update user", err)
		}
		util.Logger.Info("用户邮箱已修改", zap.Int("user_id", userID))

		if claims, err := util.ParseToken(currentToken); err == nil {
			if err := s.auth.revoke(ctx, currentToken, claims); err != nil {
				util.Logger.Warn("注销旧令牌失败", zap.Error(err), zap.Int("user_id", userID))
			}
		}
	}

	return s.auth.issue(user, inlinePhoto(ctx, s.photos, user.Photo))
}

func (s *UserService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	_, err := s.mutate(ctx, userID, func(u *model.User) error {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
			return errors.New(errors.ErrValidation, "Current password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(errors.ErrInternal, "failed to hash password", err)
		}
		u.PasswordHash = string(hashed)
		return nil
	})
	return err
}

// ChangePhoto 先保存新图片，更新成功后再删除旧图片
func (s *UserService) ChangePhoto(ctx context.Context, userID int, encoded string) (*model.UserProfile, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := s.photos.Save(ctx, encoded)
	if err != nil {
		return nil, err
	}

	var oldKey string
	if user.HasPhoto() {
		oldKey = *user.Photo
	}
	user.Photo = &key
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.photos.Delete(ctx, key)
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update user", err)
	}
	s.photos.Delete(ctx, oldKey)

	return s.profile(ctx, user), nil
}

func (s *UserService) mutate(ctx context.Context, userID int, apply func(u *model.User) error) (*model.UserProfile, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := apply(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update user", err)
	}
	return s.profile(ctx, user), nil
}

func (s *UserService) currentUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find user", err)
	}
	if user == nil {
		return nil, errors.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) profile(ctx context.Context, user *model.User) *model.UserProfile {
	return &model.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Photo:     inlinePhoto(ctx, s.photos, user.Photo),
	}
}
