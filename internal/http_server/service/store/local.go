// Package store
package store

import (
	"io"
	"mime/multipart"
	"os"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
)

type LocalStoreService struct {
	logger log.LoggerInterface
	config *c.HttpServerStore
}

func NewLocalStoreService(logger log.LoggerInterface, config *c.HttpServerStore) *LocalStoreService {
	return &LocalStoreService{
		logger: logger,
		config: config,
	}
}

func (store *LocalStoreService) SaveScheduleFile(file *multipart.FileHeader) (*StoreInfo, *ApiStatus) {
	storeInfo, res := SCHEDULES.GenerateStoreInfo(store.config.FileLimit.ScheduleLimit, file)
	if res != nil {
		return nil, res
	}
	if !storeInfo.StoreInServer {
		return storeInfo, nil
	}
	src, err := file.Open()
	defer func(src multipart.File) {
		_ = src.Close()
	}(src)
	if err != nil {
		store.logger.ErrorF("LocalStoreService.SaveScheduleFile open file error: %v", err)
		return nil, &ErrFileSaveFail
	}
	dst, err := os.OpenFile(storeInfo.FilePath, os.O_WRONLY|os.O_CREATE, global.DefaultFilePermissions)
	defer func(dst *os.File) {
		_ = dst.Close()
	}(dst)
	if err != nil {
		store.logger.ErrorF("LocalStoreService.SaveScheduleFile create file error: %v", err)
		return nil, &ErrFileSaveFail
	}
	_, err = io.Copy(dst, src)
	if err != nil {
		store.logger.ErrorF("LocalStoreService.SaveScheduleFile copy file error: %v", err)
		return nil, &ErrFileSaveFail
	}
	return storeInfo, nil
}

func (store *LocalStoreService) AccessUrl(storeInfo *StoreInfo) (string, *ApiStatus) {
	return storeInfo.RemotePath, nil
}
