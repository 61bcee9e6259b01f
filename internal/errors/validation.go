package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FromBinding 将请求绑定错误转换为 AppError，字段错误全部汇总
func FromBinding(err error) *AppError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return Wrap(ErrBadRequest, "Malformed request body", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}

	return &AppError{
		Code:    ErrValidation,
		Message: "Request validation failed",
		Err:     err,
		Fields:  fields,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "min":
		if isText(fe) {
			return fmt.Sprintf("length must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isText(fe) {
			return fmt.Sprintf("length must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "past_date":
		return "must be a date in the past"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func isText(fe validator.FieldError) bool {
	_, ok := fe.Value().(string)
	return ok
}
