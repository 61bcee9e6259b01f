package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"petshop-backend/internal/model"
	"petshop-backend/internal/util"

	"go.uber.org/zap"
)

const userColumns = `id, email, password_hash, first_name, last_name, photo, created_at, updated_at`

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, photo) VALUES (?, ?, ?, ?, ?)`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Photo)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err), zap.String("email", user.Email))
		return wrapWriteError("failed to create user", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	user.ID = int(id)
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindByEmail 通过邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// ExistsByEmail 邮箱是否已注册
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		UPDATE users
		SET email = ?, password_hash = ?, first_name = ?, last_name = ?, photo = ?
		WHERE id = ?`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Photo, user.ID)
	if err != nil {
		util.Logger.Error("更新用户失败", zap.Error(err), zap.Int("user_id", user.ID))
		return wrapWriteError("failed to update user", err)
	}
	return nil
}

// Count 返回用户总数
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := conn(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Photo, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		util.Logger.Error("查找用户失败", zap.Error(err))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
