// Package operation
package operation

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user does not exist")
	// ErrIdentifierTaken 用户名或邮箱已被占用
	ErrIdentifierTaken = errors.New("user identifiers have been used")
	// ErrIdentifierCheck 一致性检查异常
	ErrIdentifierCheck = errors.New("identifier check error")
	// ErrPasswordEncode 密码编码错误
	ErrPasswordEncode = errors.New("password encode error")
)

// UserOperationInterface 用户操作接口定义
type UserOperationInterface interface {
	// GetUserByUid 通过主键ID获取用户, 当err为nil时返回值user有效
	GetUserByUid(uid uint) (user *User, err error)
	// GetUserByUsernameOrEmail 通过用户名或者邮箱获取用户, 当err为nil时返回值user有效
	GetUserByUsernameOrEmail(ident string) (user *User, err error)
	// GetUsers 获取分页用户数据, 当err为nil时返回值users有效, total表示数据总数目
	GetUsers(page, pageSize int) (users []*User, total int64, err error)
	// NewUser 创建一个新用户(只是创建, 没有写入数据库), 当err为nil时返回值user有效
	NewUser(username string, email string, password string) (user *User, err error)
	// AddUser 创建一个新用户(写入数据库), 写入前检查用户名/邮箱唯一性, 当err为nil时表示创建成功
	AddUser(user *User) (err error)
	// UpdateUserPermission 更新用户权限, 当err为nil时表示更新成功
	UpdateUserPermission(user *User, permission Permission) (err error)
	// VerifyUserPassword 验证用户密码是否正确, pass为true表示验证通过
	VerifyUserPassword(user *User, password string) (pass bool)
	// IsUserIdentifierTaken 检查用户名和邮箱的唯一性约束
	IsUserIdentifierTaken(tx *gorm.DB, username, email string) (taken bool, err error)
}
