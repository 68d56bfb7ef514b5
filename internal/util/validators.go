package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// 用户名只允许字母、数字和 @ . + - _
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername 验证用户名格式
func ValidateUsername(fl validator.FieldLevel) bool {
	username, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(username) <= 150 && usernameRe.MatchString(username)
}
