// Package interfaces
package interfaces

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/config"
)

type ConfigManagerInterface interface {
	Config() *config.Config
	SaveConfig() error
}
