// Package config
package config

import (
	"errors"

	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"golang.org/x/crypto/bcrypt"
)

type GeneralConfig struct {
	AirportCode string `json:"airport_code"`
	BcryptCost  int    `json:"bcrypt_cost"`
}

func defaultGeneralConfig() *GeneralConfig {
	return &GeneralConfig{
		AirportCode: "ZBAA",
		BcryptCost:  12,
	}
}

func (config *GeneralConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.AirportCode == "" {
		return ValidFail(errors.New("invalid json field general.airport_code, cannot be empty"))
	}
	if config.BcryptCost < bcrypt.MinCost || config.BcryptCost > bcrypt.MaxCost {
		return ValidFail(errors.New("bcrypt_cost out of range, must between 4 and 31"))
	}
	return ValidPass()
}
