// Package planner
package planner

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// ConfigError 运行参数或约束非法, 中止本次运行
	ConfigError ErrorKind = iota + 1
	// DataError 输入数据存在悬空引用, 中止本次运行
	DataError
	// InternalError 引擎自身不变量被破坏, 中止本次运行
	InternalError
	// Cancelled 调用方取消了本次运行
	Cancelled
)

var errorKindString = []string{"", "ConfigError", "DataError", "InternalError", "Cancelled"}

func (kind ErrorKind) String() string {
	if kind <= 0 || int(kind) >= len(errorKindString) {
		return "UnknownError"
	}
	return errorKindString[kind]
}

// PlanError 规划运行的类型化错误, 恢复边界始终是整次运行
type PlanError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (planError *PlanError) Error() string {
	if planError.Err != nil {
		return fmt.Sprintf("%s: %s: %v", planError.Kind, planError.Message, planError.Err)
	}
	return fmt.Sprintf("%s: %s", planError.Kind, planError.Message)
}

func (planError *PlanError) Unwrap() error {
	return planError.Err
}

func NewConfigError(format string, v ...interface{}) *PlanError {
	return &PlanError{Kind: ConfigError, Message: fmt.Sprintf(format, v...)}
}

func NewDataError(format string, v ...interface{}) *PlanError {
	return &PlanError{Kind: DataError, Message: fmt.Sprintf(format, v...)}
}

func NewInternalError(format string, v ...interface{}) *PlanError {
	return &PlanError{Kind: InternalError, Message: fmt.Sprintf(format, v...)}
}

func NewCancelled(err error) *PlanError {
	return &PlanError{Kind: Cancelled, Message: "run cancelled by caller", Err: err}
}

// KindOf 返回err携带的错误类型, 非PlanError返回0
func KindOf(err error) ErrorKind {
	var planError *PlanError
	if errors.As(err, &planError) {
		return planError.Kind
	}
	return 0
}
