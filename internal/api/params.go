package api

import (
	"petshop-backend/internal/errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID 读取正整数路径参数
func ParamID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errors.Newf(errors.ErrBadRequest, "Invalid %s", name)
	}
	return id, nil
}

// UserID 认证中间件写入的当前用户ID
func UserID(c *gin.Context) int {
	return c.GetInt("user_id")
}
