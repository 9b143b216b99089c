// Package controller
package controller

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type PlanControllerInterface interface {
	CreateScenario(ctx echo.Context) error
	GetScenarios(ctx echo.Context) error
	GetScenarioDetail(ctx echo.Context) error
	UploadSchedule(ctx echo.Context) error
	RunAllocation(ctx echo.Context) error
	GetRunProgress(ctx echo.Context) error
	CapacityReport(ctx echo.Context) error
	MaintenanceImpact(ctx echo.Context) error
}

type PlanController struct {
	logger  log.LoggerInterface
	service PlanServiceInterface
}

func NewPlanController(logger log.LoggerInterface, service PlanServiceInterface) *PlanController {
	return &PlanController{
		logger:  logger,
		service: service,
	}
}

func (controller *PlanController) CreateScenario(ctx echo.Context) error {
	data := &RequestCreateScenario{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.CreateScenario bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.CreateScenario(data).Response(ctx)
}

func (controller *PlanController) GetScenarios(ctx echo.Context) error {
	data := &RequestScenarioList{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.GetScenarios bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetScenarioList(data).Response(ctx)
}

func (controller *PlanController) GetScenarioDetail(ctx echo.Context) error {
	data := &RequestScenarioDetail{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.GetScenarioDetail bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetScenarioDetail(data).Response(ctx)
}

func (controller *PlanController) UploadSchedule(ctx echo.Context) error {
	data := &RequestUploadSchedule{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.UploadSchedule bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		controller.logger.ErrorF("PlanController.UploadSchedule form file error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.File = file
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.UploadSchedule(data).Response(ctx)
}

func (controller *PlanController) RunAllocation(ctx echo.Context) error {
	data := &RequestRunAllocation{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.RunAllocation bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.RunAllocation(data).Response(ctx)
}

func (controller *PlanController) GetRunProgress(ctx echo.Context) error {
	data := &RequestRunProgress{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.GetRunProgress bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetRunProgress(data).Response(ctx)
}

func (controller *PlanController) CapacityReport(ctx echo.Context) error {
	data := &RequestCapacityReport{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.CapacityReport bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.CapacityReport(data).Response(ctx)
}

func (controller *PlanController) MaintenanceImpact(ctx echo.Context) error {
	data := &RequestMaintenanceImpact{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("PlanController.MaintenanceImpact bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.MaintenanceImpact(data).Response(ctx)
}
