package model

import "time"

// PaymentCard 已保存的支付卡，只保留掩码和后四位
type PaymentCard struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	MaskedNumber   string    `json:"masked_number"`
	CardholderName string    `json:"cardholder_name"`
	ExpiryMonth    int       `json:"expiry_month"`
	ExpiryYear     int       `json:"expiry_year"`
	LastFourDigits string    `json:"last_four_digits"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddCardRequest 添加支付卡请求，卡号和CVV仅用于校验
type AddCardRequest struct {
	CardNumber     string `json:"card_number" binding:"required"`
	CardholderName string `json:"cardholder_name" binding:"required,max=100"`
	ExpiryMonth    int    `json:"expiry_month" binding:"required"`
	ExpiryYear     int    `json:"expiry_year" binding:"required"`
	CVV            string `json:"cvv" binding:"required"`
	IsDefault      bool   `json:"is_default"`
}
