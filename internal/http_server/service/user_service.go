// Package service
package service

import (
	"errors"
	"fmt"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

type UserService struct {
	logger            log.LoggerInterface
	config            *c.HttpServerConfig
	userOperation     operation.UserOperationInterface
	auditLogOperation operation.AuditLogOperationInterface
	emailService      EmailServiceInterface
}

func NewUserService(
	logger log.LoggerInterface,
	config *c.HttpServerConfig,
	userOperation operation.UserOperationInterface,
	auditLogOperation operation.AuditLogOperationInterface,
	emailService EmailServiceInterface,
) *UserService {
	return &UserService{
		logger:            logger,
		config:            config,
		userOperation:     userOperation,
		auditLogOperation: auditLogOperation,
		emailService:      emailService,
	}
}

var (
	ErrEmailNotFound    = ApiStatus{StatusName: "EMAIL_CODE_NOT_FOUND", Description: "未向该邮箱发送验证码", HttpCode: BadRequest}
	ErrEmailExpired     = ApiStatus{StatusName: "EMAIL_CODE_EXPIRED", Description: "验证码已过期", HttpCode: BadRequest}
	ErrEmailCodeInvalid = ApiStatus{StatusName: "EMAIL_CODE_INVALID", Description: "邮箱验证码错误", HttpCode: BadRequest}
	SuccessRegister     = ApiStatus{StatusName: "REGISTER_SUCCESS", Description: "注册成功", HttpCode: Ok}
)

func (userService *UserService) verifyEmailCode(email string, emailCode int) *ApiStatus {
	err := userService.emailService.VerifyCode(email, emailCode)
	switch {
	case errors.Is(err, ErrEmailCodeNotFound):
		return &ErrEmailNotFound
	case errors.Is(err, ErrEmailCodeExpired):
		return &ErrEmailExpired
	case errors.Is(err, ErrInvalidEmailCode):
		return &ErrEmailCodeInvalid
	default:
		return nil
	}
}

func (userService *UserService) UserRegister(req *RequestUserRegister) *ApiResponse[ResponseUserRegister] {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return NewApiResponse[ResponseUserRegister](&ErrIllegalParam, Unsatisfied, nil)
	}
	if res := userService.verifyEmailCode(req.Email, req.EmailCode); res != nil {
		return NewApiResponse[ResponseUserRegister](res, Unsatisfied, nil)
	}
	if err := usernameValidator.CheckString(req.Username); err != nil {
		return NewApiResponse[ResponseUserRegister](err, Unsatisfied, nil)
	}
	if err := emailValidator.CheckString(req.Email); err != nil {
		return NewApiResponse[ResponseUserRegister](err, Unsatisfied, nil)
	}
	if err := passwordValidator.CheckString(req.Password); err != nil {
		return NewApiResponse[ResponseUserRegister](err, Unsatisfied, nil)
	}
	user, err := userService.userOperation.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		return NewApiResponse[ResponseUserRegister](&ErrRegisterFail, Unsatisfied, nil)
	}
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseUserRegister](func() (*interface{}, error) {
		return nil, userService.userOperation.AddUser(user)
	}); res != nil {
		return res
	}
	token := NewClaims(userService.config.JWT, user, false)
	flushToken := NewClaims(userService.config.JWT, user, true)
	return NewApiResponse(&SuccessRegister, Unsatisfied, &ResponseUserRegister{
		User:       user,
		Token:      token.GenerateKey(),
		FlushToken: flushToken.GenerateKey(),
	})
}

var (
	ErrUsernameOrPassword = ApiStatus{StatusName: "WRONG_USERNAME_OR_PASSWORD", Description: "用户名或密码错误", HttpCode: BadRequest}
	SuccessLogin          = ApiStatus{StatusName: "LOGIN_SUCCESS", Description: "登陆成功", HttpCode: Ok}
)

func (userService *UserService) UserLogin(req *RequestUserLogin) *ApiResponse[ResponseUserLogin] {
	if req.Username == "" || req.Password == "" {
		return NewApiResponse[ResponseUserLogin](&ErrIllegalParam, Unsatisfied, nil)
	}

	user, res := CallDBFuncAndCheckError[operation.User, ResponseUserLogin](func() (*operation.User, error) {
		return userService.userOperation.GetUserByUsernameOrEmail(req.Username)
	})
	if res != nil {
		return res
	}

	if pass := userService.userOperation.VerifyUserPassword(user, req.Password); pass {
		token := NewClaims(userService.config.JWT, user, false)
		flushToken := NewClaims(userService.config.JWT, user, true)
		return NewApiResponse(&SuccessLogin, Unsatisfied, &ResponseUserLogin{
			User:       user,
			Token:      token.GenerateKey(),
			FlushToken: flushToken.GenerateKey(),
		})
	} else {
		return NewApiResponse[ResponseUserLogin](&ErrUsernameOrPassword, Unsatisfied, nil)
	}
}

var (
	NameNotAvailability = ApiStatus{StatusName: "INFO_NOT_AVAILABILITY", Description: "用户信息不可用", HttpCode: Ok}
	NameAvailability    = ApiStatus{StatusName: "INFO_AVAILABILITY", Description: "用户信息可用", HttpCode: Ok}
)

func (userService *UserService) CheckAvailability(req *RequestUserAvailability) *ApiResponse[ResponseUserAvailability] {
	if req.Username == "" && req.Email == "" {
		return NewApiResponse[ResponseUserAvailability](&ErrIllegalParam, Unsatisfied, nil)
	}
	taken, _ := userService.userOperation.IsUserIdentifierTaken(nil, req.Username, req.Email)
	data := ResponseUserAvailability(!taken)
	if taken {
		return NewApiResponse(&NameNotAvailability, Unsatisfied, &data)
	}
	return NewApiResponse(&NameAvailability, Unsatisfied, &data)
}

var (
	SuccessGetCurrentProfile = ApiStatus{StatusName: "GET_CURRENT_PROFILE_SUCCESS", Description: "获取当前用户信息成功", HttpCode: Ok}
)

func (userService *UserService) GetCurrentProfile(req *RequestUserCurrentProfile) *ApiResponse[ResponseUserCurrentProfile] {
	if user, err := userService.userOperation.GetUserByUid(req.Uid); errors.Is(err, operation.ErrUserNotFound) {
		return NewApiResponse[ResponseUserCurrentProfile](&ErrUserNotFound, Unsatisfied, nil)
	} else if err != nil {
		return NewApiResponse[ResponseUserCurrentProfile](&ErrDatabaseFail, Unsatisfied, nil)
	} else {
		return NewApiResponse(&SuccessGetCurrentProfile, Unsatisfied, (*ResponseUserCurrentProfile)(user))
	}
}

var (
	SuccessGetUserList = ApiStatus{StatusName: "GET_USER_LIST_SUCCESS", Description: "获取用户列表成功", HttpCode: Ok}
)

func (userService *UserService) GetUserList(req *RequestUserList) *ApiResponse[ResponseUserList] {
	if req.Page <= 0 || req.PageSize <= 0 {
		return NewApiResponse[ResponseUserList](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseUserList](userService.userOperation, req.Uid, operation.UserShowList); res != nil {
		return res
	}
	users, total, err := userService.userOperation.GetUsers(req.Page, req.PageSize)
	if err != nil {
		return NewApiResponse[ResponseUserList](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetUserList, Unsatisfied, &ResponseUserList{
		Items:    users,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

var (
	ErrPermissionNode     = ApiStatus{StatusName: "PERMISSION_NODE_ERROR", Description: "权限节点不存在", HttpCode: BadRequest}
	SuccessEditPermission = ApiStatus{StatusName: "EDIT_PERMISSION_SUCCESS", Description: "编辑用户权限成功", HttpCode: Ok}
)

func (userService *UserService) EditUserPermission(req *RequestUserEditPermission) *ApiResponse[ResponseUserEditPermission] {
	if req.TargetUid <= 0 || len(req.Permissions) == 0 {
		return NewApiResponse[ResponseUserEditPermission](&ErrIllegalParam, Unsatisfied, nil)
	}
	operator, res := GetUserAndCheckPermission[ResponseUserEditPermission](userService.userOperation, req.Uid, operation.UserEditPermission)
	if res != nil {
		return res
	}
	target, res := CallDBFuncAndCheckError[operation.User, ResponseUserEditPermission](func() (*operation.User, error) {
		return userService.userOperation.GetUserByUid(req.TargetUid)
	})
	if res != nil {
		return res
	}

	permission := operation.Permission(target.Permission)
	auditLogs := make([]*operation.AuditLog, 0, len(req.Permissions))
	for node, value := range req.Permissions {
		perm, ok := operation.PermissionMap[node]
		if !ok {
			return NewApiResponse[ResponseUserEditPermission](&ErrPermissionNode, Unsatisfied, nil)
		}
		grant, ok := value.(bool)
		if !ok {
			return NewApiResponse[ResponseUserEditPermission](&ErrIllegalParam, Unsatisfied, nil)
		}
		if permission.HasPermission(perm) == grant {
			continue
		}
		eventType := operation.UserPermissionGrant
		if grant {
			permission.Grant(perm)
		} else {
			permission.Revoke(perm)
			eventType = operation.UserPermissionRevoke
		}
		auditLogs = append(auditLogs, userService.auditLogOperation.NewAuditLog(
			eventType,
			operator.ID,
			fmt.Sprintf("user(%d)", target.ID),
			req.Ip,
			req.UserAgent,
			&operation.ChangeDetail{Field: node, OldValue: fmt.Sprint(!grant), NewValue: fmt.Sprint(grant)},
		))
	}

	if _, res := CallDBFuncAndCheckError[interface{}, ResponseUserEditPermission](func() (*interface{}, error) {
		return nil, userService.userOperation.UpdateUserPermission(target, permission)
	}); res != nil {
		return res
	}

	if err := userService.auditLogOperation.SaveAuditLogs(auditLogs); err != nil {
		userService.logger.WarnF("Fail to save permission audit logs: %v", err)
	}

	return NewApiResponse(&SuccessEditPermission, Unsatisfied, (*ResponseUserEditPermission)(target))
}
