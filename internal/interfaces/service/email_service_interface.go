// Package service
package service

import (
	"html/template"

	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
)

type EmailServiceInterface interface {
	RenderTemplate(template *template.Template, data interface{}) (string, error)
	VerifyCode(email string, code int) error
	SendEmailCode(email string) error
	SendEmailVerifyCode(req *RequestEmailVerifyCode) *ApiResponse[ResponseEmailVerifyCode]
	SendMaintenanceStatusEmail(request *operation.MaintenanceRequest, stand *operation.Stand, requester, operator *operation.User) error
}

type RequestEmailVerifyCode struct {
	Email string `json:"email"`
}

type ResponseEmailVerifyCode struct {
	Email string `json:"email"`
}
