package model

import "time"

// Comment 商品评论
type Comment struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentInput 创建或修改评论
type CommentInput struct {
	ProductID int    `json:"product_id" binding:"required,min=1"`
	Text      string `json:"text" binding:"required,min=1,max=1000"`
}

// Feedback 用户反馈
type Feedback struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedbackInput 创建或修改反馈
type FeedbackInput struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}
