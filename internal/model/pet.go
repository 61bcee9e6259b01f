package model

import "time"

// Pet 用户的宠物档案
type Pet struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Name        string     `json:"name"`
	Breed       string     `json:"breed"`
	Gender      string     `json:"gender"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	Age         int        `json:"age"`
	Description string     `json:"description"`
	Photo       *string    `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PetInput 创建或修改宠物档案
type PetInput struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Breed       string     `json:"breed" binding:"max=100"`
	Gender      string     `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Birthday    *time.Time `json:"birthday" binding:"omitempty,past_date"`
	Age         int        `json:"age" binding:"min=0,max=100"`
	Description string     `json:"description" binding:"max=2000"`
}

// PetView 返回给客户端的宠物档案，照片内联为 data URI
type PetView struct {
	*Pet
	Photo string `json:"photo,omitempty"`
}

// PetPhotoRequest 上传宠物照片
type PetPhotoRequest struct {
	Photo string `json:"photo" binding:"required"`
}
