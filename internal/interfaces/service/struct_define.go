// Package service
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"github.com/labstack/echo/v4"
)

type HttpCode int

const (
	Unsatisfied         HttpCode = 0
	Ok                  HttpCode = 200
	BadRequest          HttpCode = 400
	Unauthorized        HttpCode = 401
	PermissionDenied    HttpCode = 403
	NotFound            HttpCode = 404
	Conflict            HttpCode = 409
	ServerInternalError HttpCode = 500
)

func (hc HttpCode) Code() int {
	return int(hc)
}

type ApiStatus struct {
	StatusName  string
	Description string
	HttpCode    HttpCode
}

type ApiResponse[T any] struct {
	HttpCode int    `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     *T     `json:"data"`
}

type Claims struct {
	Uid        uint   `json:"uid"`
	Username   string `json:"username"`
	Permission int64  `json:"permission"`
	FlushToken bool   `json:"flushToken"`
	config     *c.JWTConfig
	jwt.RegisteredClaims
}

type JwtHeader struct {
	Uid        uint
	Permission int64
	Ip         string
	UserAgent  string
}

func NewClaims(config *c.JWTConfig, user *operation.User, flushToken bool) *Claims {
	expiredDuration := config.ExpiresDuration
	if flushToken {
		expiredDuration += config.RefreshDuration
	}
	return &Claims{
		Uid:        user.ID,
		Username:   user.Username,
		Permission: user.Permission,
		FlushToken: flushToken,
		config:     config,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "StandPlannerHttpServer",
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiredDuration)),
		},
	}
}

func (claim *Claims) GenerateKey() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claim)
	tokenString, _ := token.SignedString([]byte(claim.config.Secret))
	return tokenString
}

func (res *ApiResponse[T]) Response(ctx echo.Context) error {
	return ctx.JSON(res.HttpCode, res)
}

var (
	ErrIllegalParam          = ApiStatus{StatusName: "PARAM_ERROR", Description: "参数不正确", HttpCode: BadRequest}
	ErrLackParam             = ApiStatus{StatusName: "PARAM_LACK_ERROR", Description: "缺少参数", HttpCode: BadRequest}
	ErrNoPermission          = ApiStatus{StatusName: "NO_PERMISSION", Description: "无权这么做", HttpCode: PermissionDenied}
	ErrDatabaseFail          = ApiStatus{StatusName: "DATABASE_ERROR", Description: "服务器内部错误", HttpCode: ServerInternalError}
	ErrUserNotFound          = ApiStatus{StatusName: "USER_NOT_FOUND", Description: "指定用户不存在", HttpCode: NotFound}
	ErrRegisterFail          = ApiStatus{StatusName: "REGISTER_FAIL", Description: "注册失败", HttpCode: ServerInternalError}
	ErrIdentifierTaken       = ApiStatus{StatusName: "USER_EXISTS", Description: "用户已存在", HttpCode: BadRequest}
	ErrTerminalNotFound      = ApiStatus{StatusName: "TERMINAL_NOT_FOUND", Description: "航站楼不存在", HttpCode: NotFound}
	ErrPierNotFound          = ApiStatus{StatusName: "PIER_NOT_FOUND", Description: "指廊不存在", HttpCode: NotFound}
	ErrStandNotFound         = ApiStatus{StatusName: "STAND_NOT_FOUND", Description: "机位不存在", HttpCode: NotFound}
	ErrAircraftTypeNotFound  = ApiStatus{StatusName: "AIRCRAFT_TYPE_NOT_FOUND", Description: "机型不存在", HttpCode: NotFound}
	ErrSizeCategoryNotFound  = ApiStatus{StatusName: "SIZE_CATEGORY_NOT_FOUND", Description: "尺寸分类不存在", HttpCode: NotFound}
	ErrSettingsNotFound      = ApiStatus{StatusName: "SETTINGS_NOT_FOUND", Description: "运行参数未配置", HttpCode: NotFound}
	ErrScenarioNotFound      = ApiStatus{StatusName: "SCENARIO_NOT_FOUND", Description: "排班方案不存在", HttpCode: NotFound}
	ErrScenarioState         = ApiStatus{StatusName: "SCENARIO_STATE_ERROR", Description: "排班方案状态不允许此操作", HttpCode: Conflict}
	ErrMaintenanceNotFound   = ApiStatus{StatusName: "MAINTENANCE_NOT_FOUND", Description: "维护申请不存在", HttpCode: NotFound}
	ErrMaintenanceState      = ApiStatus{StatusName: "MAINTENANCE_STATE_ERROR", Description: "维护申请状态不允许此操作", HttpCode: Conflict}
	ErrMissingOrMalformedJwt = ApiStatus{StatusName: "MISSING_OR_MALFORMED_JWT", Description: "缺少JWT令牌或者令牌格式错误", HttpCode: BadRequest}
	ErrInvalidOrExpiredJwt   = ApiStatus{StatusName: "INVALID_OR_EXPIRED_JWT", Description: "无效或过期的JWT令牌", HttpCode: Unauthorized}
	ErrUnknown               = ApiStatus{StatusName: "UNKNOWN_JWT_ERROR", Description: "未知的JWT解析错误", HttpCode: ServerInternalError}
)

func NewErrorResponse(ctx echo.Context, codeStatus *ApiStatus) error {
	return NewApiResponse[any](codeStatus, Unsatisfied, nil).Response(ctx)
}

func NewApiResponse[T any](codeStatus *ApiStatus, httpCode HttpCode, data *T) *ApiResponse[T] {
	if httpCode == Unsatisfied {
		httpCode = codeStatus.HttpCode
	}
	if httpCode == Unsatisfied {
		httpCode = Ok
	}
	return &ApiResponse[T]{
		HttpCode: httpCode.Code(),
		Code:     codeStatus.StatusName,
		Message:  codeStatus.Description,
		Data:     data,
	}
}

// CallDBFuncAndCheckError 调用数据库操作函数并处理错误
func CallDBFuncAndCheckError[R any, T any](fc func() (*R, error)) (*R, *ApiResponse[T]) {
	result, err := fc()
	switch {
	case errors.Is(err, operation.ErrIdentifierCheck):
		return nil, NewApiResponse[T](&ErrRegisterFail, Unsatisfied, nil)
	case errors.Is(err, operation.ErrIdentifierTaken):
		return nil, NewApiResponse[T](&ErrIdentifierTaken, Unsatisfied, nil)
	case errors.Is(err, operation.ErrUserNotFound):
		return nil, NewApiResponse[T](&ErrUserNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrTerminalNotFound):
		return nil, NewApiResponse[T](&ErrTerminalNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrPierNotFound):
		return nil, NewApiResponse[T](&ErrPierNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrStandNotFound):
		return nil, NewApiResponse[T](&ErrStandNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrAircraftTypeNotFound):
		return nil, NewApiResponse[T](&ErrAircraftTypeNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrSizeCategoryNotFound):
		return nil, NewApiResponse[T](&ErrSizeCategoryNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrSettingsNotFound):
		return nil, NewApiResponse[T](&ErrSettingsNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrScenarioNotFound):
		return nil, NewApiResponse[T](&ErrScenarioNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrScenarioTransition):
		return nil, NewApiResponse[T](&ErrScenarioState, Unsatisfied, nil)
	case errors.Is(err, operation.ErrMaintenanceNotFound):
		return nil, NewApiResponse[T](&ErrMaintenanceNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrMaintenanceTransition):
		return nil, NewApiResponse[T](&ErrMaintenanceState, Unsatisfied, nil)
	case err != nil:
		return nil, NewApiResponse[T](&ErrDatabaseFail, Unsatisfied, nil)
	default:
		return result, nil
	}
}

// GetUserAndCheckPermission 从数据库获取用户数据并检查权限
func GetUserAndCheckPermission[T any](userOperation operation.UserOperationInterface, uid uint, perm operation.Permission) (*operation.User, *ApiResponse[T]) {
	// 敏感操作获取实时数据
	user, res := CallDBFuncAndCheckError[operation.User, T](func() (*operation.User, error) { return userOperation.GetUserByUid(uid) })
	if res != nil {
		return nil, res
	}
	permission := operation.Permission(user.Permission)
	if !permission.HasPermission(perm) {
		return nil, NewApiResponse[T](&ErrNoPermission, Unsatisfied, nil)
	}
	return user, nil
}
