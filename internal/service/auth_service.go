package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"petshop-backend/internal/cache"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"petshop-backend/internal/util"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMessage = "Invalid email or password"

// dummyPasswordHash 邮箱不存在时也做一次 bcrypt 比较，两种失败耗时一致
var dummyPasswordHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("petshop-unknown-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

type AuthServiceInterface interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ResolveUserID(ctx context.Context, token string) (int, error)
}

// AuthService 处理注册、登录以及令牌到用户的解析
type AuthService struct {
	userRepo  interfaces.UserRepository
	blacklist cache.TokenBlacklist
	photos    PhotoServiceInterface
	notifier  Notifier
	compare   func(hash, password []byte) error
}

func NewAuthService(userRepo interfaces.UserRepository, blacklist cache.TokenBlacklist, photos PhotoServiceInterface, notifier Notifier) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		blacklist: blacklist,
		photos:    photos,
		notifier:  notifier,
		compare:   bcrypt.CompareHashAndPassword,
	}
}

var _ AuthServiceInterface = (*AuthService)(nil)

// Signup 注册新用户并签发令牌
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to check email", err)
	}
	if exists {
		return nil, errors.Newf(errors.ErrResourceExists, "User with email '%s' already exists", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to hash password", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, interfaces.ErrDuplicate) {
			return nil, errors.Wrap(errors.ErrResourceExists, fmt.Sprintf("User with email '%s' already exists", email), err)
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create user", err)
	}

	util.Logger.Info("用户注册成功", zap.Int("user_id", user.ID))
	if s.notifier != nil {
		s.notifier.SendWelcome(user)
	}

	return s.issue(user, "")
}

// Login 邮箱不存在与密码错误返回相同的错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to find user", err)
	}
	if user == nil {
		_ = s.compare(dummyPasswordHash(), []byte(password))
		util.Logger.Info("登录失败", zap.String("reason", "unknown email"))
		return nil, errors.New(errors.ErrInvalidCredentials, invalidCredentialsMessage)
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.Logger.Info("登录失败", zap.String("reason", "password mismatch"), zap.Int("user_id", user.ID))
		return nil, errors.New(errors.ErrInvalidCredentials, invalidCredentialsMessage)
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return s.issue(user, inlinePhoto(ctx, s.photos, user.Photo))
}

// Logout 令牌在剩余有效期内被拒绝
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := util.ParseToken(token)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidToken, "Invalid token", err)
	}
	return s.revoke(ctx, token, claims)
}

// ResolveUserID 验证令牌并把邮箱映射为用户ID
func (s *AuthService) ResolveUserID(ctx context.Context, token string) (int, error) {
	claims, err := util.ParseToken(token)
	if err != nil {
		if util.IsTokenExpired(err) {
			return 0, errors.Wrap(errors.ErrTokenExpired, "Token has expired", err)
		}
		return 0, errors.Wrap(errors.ErrInvalidToken, "Invalid token", err)
	}

	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		util.Logger.Error("查询令牌黑名单失败", zap.Error(err))
		return 0, errors.Wrap(errors.ErrCache, "failed to check token revocation", err)
	}
	if revoked {
		return 0, errors.New(errors.ErrInvalidToken, "Token has been revoked")
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email())
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "failed to resolve user", err)
	}
	if user == nil {
		// 签名有效但用户不存在，属于数据不一致
		util.Logger.Error("令牌中的邮箱没有对应用户",
			zap.String("email", claims.Email()),
			zap.String("token_user_id", claims.UserID))
		return 0, errors.New(errors.ErrInternal, "authenticated principal has no user record")
	}
	return user.ID, nil
}

func (s *AuthService) revoke(ctx context.Context, token string, claims *util.TokenClaims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Add(ctx, token, ttl); err != nil {
		util.Logger.Error("写入令牌黑名单失败", zap.Error(err))
		return errors.Wrap(errors.ErrCache, "failed to revoke token", err)
	}
	return nil
}

func (s *AuthService) issue(user *model.User, photo string) (*model.AuthResponse, error) {
	token, err := util.GenerateToken(user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to generate token", err)
	}
	return &model.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Photo:     photo,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
