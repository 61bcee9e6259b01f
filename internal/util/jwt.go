package util

import (
	"errors"
	"petshop-backend/config"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims 令牌中携带的用户信息，subject 为邮箱
type TokenClaims struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserID    string `json:"userId"`
	jwt.RegisteredClaims
}

// Email 令牌主体中的邮箱
func (c *TokenClaims) Email() string {
	return c.Subject
}

func GenerateToken(userID int, email, firstName, lastName string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		FirstName: firstName,
		LastName:  lastName,
		UserID:    strconv.Itoa(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func ParseToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, errors.New("令牌为空")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("无效的令牌")
	}
	if claims.Subject == "" {
		return nil, errors.New("令牌缺少邮箱")
	}
	return claims, nil
}

// IsTokenExpired 判断解析错误是否因为过期
func IsTokenExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

func tokenTTL() time.Duration {
	if config.AppConfig.JWTExpiration > 0 {
		return config.AppConfig.JWTExpiration
	}
	return 24 * time.Hour
}
