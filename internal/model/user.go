package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Photo        *string   `json:"-"` // 存储中的对象键
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPhoto 用户是否设置了头像
func (u *User) HasPhoto() bool {
	return u.Photo != nil && *u.Photo != ""
}

// UserProfile 返回给客户端的用户资料
type UserProfile struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo     string `json:"photo,omitempty"`
}

// AuthResponse 登录、注册以及修改邮箱后返回的令牌和资料
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo     string `json:"photo,omitempty"`
}

// SignupRequest 注册请求
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangeFirstNameRequest 修改名
type ChangeFirstNameRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
}

// ChangeLastNameRequest 修改姓
type ChangeLastNameRequest struct {
	LastName string `json:"last_name" binding:"required,max=100"`
}

// ChangeEmailRequest 修改邮箱
type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ChangePasswordRequest 修改密码，需要提供当前密码
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
}

// ChangePhotoRequest 上传头像，base64 或 data URI
type ChangePhotoRequest struct {
	Photo string `json:"photo" binding:"required"`
}
