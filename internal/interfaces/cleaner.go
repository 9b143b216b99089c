// Package interfaces
package interfaces

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
)

type CleanerInterface interface {
	Init()
	Add(callable global.Callable)
	Clean()
}
