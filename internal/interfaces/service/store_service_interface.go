// Package service
package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
)

var (
	ErrFilePathFail       = ApiStatus{StatusName: "FILE_PATH_FAIL", Description: "文件上传失败", HttpCode: ServerInternalError}
	ErrFileSaveFail       = ApiStatus{StatusName: "FILE_SAVE_FAIL", Description: "文件保存失败", HttpCode: ServerInternalError}
	ErrFileUploadFail     = ApiStatus{StatusName: "FILE_UPLOAD_FAIL", Description: "文件上传失败", HttpCode: ServerInternalError}
	ErrFileOverSize       = ApiStatus{StatusName: "FILE_OVER_SIZE", Description: "文件过大", HttpCode: BadRequest}
	ErrFileExtUnsupported = ApiStatus{StatusName: "FILE_EXT_UNSUPPORTED", Description: "不支持的文件类型", HttpCode: BadRequest}
	ErrFileNameIllegal    = ApiStatus{StatusName: "FILE_NAME_ILLEGAL", Description: "文件名不合法", HttpCode: BadRequest}
	SuccessUploadFile     = ApiStatus{StatusName: "UPLOAD_FILE", Description: "文件上传成功", HttpCode: Ok}
)

type FileType int

const (
	SCHEDULES FileType = iota
	UNKNOWN
)

// StoreInfo 文件存储信息
type StoreInfo struct {
	FileType      FileType                    // 文件类型 [FileType]
	FileLimit     *c.HttpServerStoreFileLimit // 该类型文件限制 [c.HttpServerStoreFileLimit]
	RootPath      string                      // 存储根目录
	FilePath      string                      // 文件存储路径
	RemotePath    string                      // 远程文件存储路径
	FileName      string                      // 文件名
	FileExt       string                      // 文件扩展名
	FileContent   *multipart.FileHeader       // 文件内容 [multipart.FileHeader]
	StoreInServer bool                        // 是否保存在本地
}

func NewStoreInfo(fileType FileType, fileLimit *c.HttpServerStoreFileLimit, file *multipart.FileHeader) *StoreInfo {
	return &StoreInfo{
		FileType:      fileType,
		FileLimit:     fileLimit,
		RootPath:      fileLimit.RootPath,
		FilePath:      "",
		FileName:      "",
		RemotePath:    "",
		FileExt:       filepath.Ext(file.Filename),
		FileContent:   file,
		StoreInServer: fileLimit.StoreInServer,
	}
}

func (fileType FileType) GenerateStoreInfo(fileLimit *c.HttpServerStoreFileLimit, file *multipart.FileHeader) (*StoreInfo, *ApiStatus) {
	if strings.Contains(file.Filename, string(filepath.Separator)) {
		return nil, &ErrFileNameIllegal
	}

	ext := filepath.Ext(file.Filename)

	if !slices.Contains(fileLimit.AllowedFileExt, ext) {
		return nil, &ErrFileExtUnsupported
	}

	if file.Size > fileLimit.MaxFileSize {
		return nil, &ErrFileOverSize
	}

	storeInfo := NewStoreInfo(fileType, fileLimit, file)

	storeInfo.FileName = filepath.Join(fileLimit.StorePrefix, fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	storeInfo.FilePath = filepath.Join(fileLimit.RootPath, storeInfo.FileName)
	storeInfo.RemotePath = strings.Replace(storeInfo.FileName, "\\", "/", -1)

	return storeInfo, nil
}

// StoreServiceInterface 上传文件落盘接口, 本地/OSS/COS三种实现
type StoreServiceInterface interface {
	SaveScheduleFile(file *multipart.FileHeader) (*StoreInfo, *ApiStatus)
	AccessUrl(storeInfo *StoreInfo) (string, *ApiStatus)
}
