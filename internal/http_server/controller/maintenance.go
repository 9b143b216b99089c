// Package controller
package controller

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type MaintenanceControllerInterface interface {
	CreateRequest(ctx echo.Context) error
	GetRequests(ctx echo.Context) error
	GetRequestDetail(ctx echo.Context) error
	TransitionRequest(ctx echo.Context) error
}

type MaintenanceController struct {
	logger  log.LoggerInterface
	service MaintenanceServiceInterface
}

func NewMaintenanceController(logger log.LoggerInterface, service MaintenanceServiceInterface) *MaintenanceController {
	return &MaintenanceController{
		logger:  logger,
		service: service,
	}
}

func (controller *MaintenanceController) CreateRequest(ctx echo.Context) error {
	data := &RequestCreateMaintenance{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("MaintenanceController.CreateRequest bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.CreateRequest(data).Response(ctx)
}

func (controller *MaintenanceController) GetRequests(ctx echo.Context) error {
	data := &RequestMaintenanceList{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("MaintenanceController.GetRequests bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetRequestList(data).Response(ctx)
}

func (controller *MaintenanceController) GetRequestDetail(ctx echo.Context) error {
	data := &RequestMaintenanceDetail{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("MaintenanceController.GetRequestDetail bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetRequestDetail(data).Response(ctx)
}

func (controller *MaintenanceController) TransitionRequest(ctx echo.Context) error {
	data := &RequestMaintenanceTransition{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("MaintenanceController.TransitionRequest bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.TransitionRequest(data).Response(ctx)
}
