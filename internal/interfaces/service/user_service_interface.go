// Package service
package service

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"github.com/labstack/echo/v4"
)

type UserServiceInterface interface {
	UserRegister(req *RequestUserRegister) *ApiResponse[ResponseUserRegister]
	UserLogin(req *RequestUserLogin) *ApiResponse[ResponseUserLogin]
	CheckAvailability(req *RequestUserAvailability) *ApiResponse[ResponseUserAvailability]
	GetCurrentProfile(req *RequestUserCurrentProfile) *ApiResponse[ResponseUserCurrentProfile]
	GetUserList(req *RequestUserList) *ApiResponse[ResponseUserList]
	EditUserPermission(req *RequestUserEditPermission) *ApiResponse[ResponseUserEditPermission]
}

type RequestUserRegister struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	EmailCode int    `json:"email_code"`
}

type ResponseUserRegister struct {
	User       *operation.User `json:"user"`
	Token      string          `json:"token"`
	FlushToken string          `json:"flush_token"`
}

type RequestUserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResponseUserLogin struct {
	User       *operation.User `json:"user"`
	Token      string          `json:"token"`
	FlushToken string          `json:"flush_token"`
}

type RequestUserAvailability struct {
	Username string `query:"username"`
	Email    string `query:"email"`
}

type ResponseUserAvailability bool

type RequestUserCurrentProfile struct {
	Uid uint
}

type ResponseUserCurrentProfile operation.User

type RequestUserList struct {
	JwtHeader
	Page     int `query:"page_number"`
	PageSize int `query:"page_size"`
}

type ResponseUserList struct {
	Items    []*operation.User `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int64             `json:"total"`
}

type RequestUserEditPermission struct {
	JwtHeader
	TargetUid   uint     `param:"uid"`
	Permissions echo.Map `json:"permissions"`
}

type ResponseUserEditPermission operation.User
