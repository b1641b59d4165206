package util

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidatePastDate 验证日期是否在过去（用于生日等字段）
func ValidatePastDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.Before(time.Now())
}

// NewValidator 创建注册了自定义规则的验证器
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("past_date", ValidatePastDate)
	return v
}
