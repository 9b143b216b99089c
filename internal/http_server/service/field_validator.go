// Package service
package service

import (
	"fmt"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

type FieldValidator struct {
	Min      int
	Max      int
	ErrShort *ApiStatus
	ErrLong  *ApiStatus
}

func (validator *FieldValidator) CheckString(value string) *ApiStatus {
	if len(value) < validator.Min {
		return validator.ErrShort
	}
	if len(value) > validator.Max {
		return validator.ErrLong
	}
	return nil
}

var (
	usernameValidator *FieldValidator
	emailValidator    *FieldValidator
	passwordValidator *FieldValidator
)

// InitValidator 根据配置初始化字段校验器, 必须在服务构建前调用
func InitValidator(config *c.HttpServerLimit) {
	usernameValidator = &FieldValidator{
		Min:      config.UsernameLengthMin,
		Max:      config.UsernameLengthMax,
		ErrShort: &ApiStatus{StatusName: "USERNAME_TOO_SHORT", Description: fmt.Sprintf("用户名过短, 至少%d个字符", config.UsernameLengthMin), HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "USERNAME_TOO_LONG", Description: fmt.Sprintf("用户名过长, 最多%d个字符", config.UsernameLengthMax), HttpCode: BadRequest},
	}
	emailValidator = &FieldValidator{
		Min:      config.EmailLengthMin,
		Max:      config.EmailLengthMax,
		ErrShort: &ApiStatus{StatusName: "EMAIL_TOO_SHORT", Description: fmt.Sprintf("邮箱过短, 至少%d个字符", config.EmailLengthMin), HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "EMAIL_TOO_LONG", Description: fmt.Sprintf("邮箱过长, 最多%d个字符", config.EmailLengthMax), HttpCode: BadRequest},
	}
	passwordValidator = &FieldValidator{
		Min:      config.PasswordLengthMin,
		Max:      config.PasswordLengthMax,
		ErrShort: &ApiStatus{StatusName: "PASSWORD_TOO_SHORT", Description: fmt.Sprintf("密码过短, 至少%d个字符", config.PasswordLengthMin), HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "PASSWORD_TOO_LONG", Description: fmt.Sprintf("密码过长, 最多%d个字符", config.PasswordLengthMax), HttpCode: BadRequest},
	}
}
