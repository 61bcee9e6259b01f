package util

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidatePastDate 验证日期是否在过去
func ValidatePastDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.Before(time.Now())
}

// RegisterValidators 注册自定义校验规则，字段错误使用JSON字段名
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v.RegisterValidation("past_date", ValidatePastDate)
}
