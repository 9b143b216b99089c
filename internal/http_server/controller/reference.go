// Package controller
package controller

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type ReferenceControllerInterface interface {
	GetTerminals(ctx echo.Context) error
	GetStands(ctx echo.Context) error
	GetAircraftTypes(ctx echo.Context) error
	GetSizeCategories(ctx echo.Context) error
	GetOperationalSettings(ctx echo.Context) error
	SaveTerminal(ctx echo.Context) error
	SavePier(ctx echo.Context) error
	SaveStand(ctx echo.Context) error
	SaveAircraftType(ctx echo.Context) error
	SaveSizeCategory(ctx echo.Context) error
	SaveTurnaroundRule(ctx echo.Context) error
	SaveStandConstraint(ctx echo.Context) error
	SaveStandAdjacency(ctx echo.Context) error
	SaveAirlineAllocation(ctx echo.Context) error
	SaveOperationalSettings(ctx echo.Context) error
	DeleteStand(ctx echo.Context) error
	DeleteAircraftType(ctx echo.Context) error
}

type ReferenceController struct {
	logger  log.LoggerInterface
	service ReferenceServiceInterface
}

func NewReferenceController(logger log.LoggerInterface, service ReferenceServiceInterface) *ReferenceController {
	return &ReferenceController{
		logger:  logger,
		service: service,
	}
}

func fillJwtHeader(ctx echo.Context, header *JwtHeader) {
	token := ctx.Get("user").(*jwt.Token)
	claim := token.Claims.(*Claims)
	header.Uid = claim.Uid
	header.Permission = claim.Permission
	header.Ip = ctx.RealIP()
	header.UserAgent = ctx.Request().UserAgent()
}

func (controller *ReferenceController) GetTerminals(ctx echo.Context) error {
	data := &RequestGetTerminals{}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetTerminals(data).Response(ctx)
}

func (controller *ReferenceController) GetStands(ctx echo.Context) error {
	data := &RequestGetStands{}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetStands(data).Response(ctx)
}

func (controller *ReferenceController) GetAircraftTypes(ctx echo.Context) error {
	data := &RequestGetAircraftTypes{}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetAircraftTypes(data).Response(ctx)
}

func (controller *ReferenceController) GetSizeCategories(ctx echo.Context) error {
	data := &RequestGetSizeCategories{}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetSizeCategories(data).Response(ctx)
}

func (controller *ReferenceController) GetOperationalSettings(ctx echo.Context) error {
	data := &RequestGetSettings{}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.GetOperationalSettings(data).Response(ctx)
}

func (controller *ReferenceController) SaveTerminal(ctx echo.Context) error {
	data := &RequestSaveTerminal{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveTerminal bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveTerminal(data).Response(ctx)
}

func (controller *ReferenceController) SavePier(ctx echo.Context) error {
	data := &RequestSavePier{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SavePier bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SavePier(data).Response(ctx)
}

func (controller *ReferenceController) SaveStand(ctx echo.Context) error {
	data := &RequestSaveStand{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveStand bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveStand(data).Response(ctx)
}

func (controller *ReferenceController) SaveAircraftType(ctx echo.Context) error {
	data := &RequestSaveAircraftType{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveAircraftType bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveAircraftType(data).Response(ctx)
}

func (controller *ReferenceController) SaveSizeCategory(ctx echo.Context) error {
	data := &RequestSaveSizeCategory{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveSizeCategory bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveSizeCategory(data).Response(ctx)
}

func (controller *ReferenceController) SaveTurnaroundRule(ctx echo.Context) error {
	data := &RequestSaveTurnaroundRule{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveTurnaroundRule bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveTurnaroundRule(data).Response(ctx)
}

func (controller *ReferenceController) SaveStandConstraint(ctx echo.Context) error {
	data := &RequestSaveStandConstraint{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveStandConstraint bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveStandConstraint(data).Response(ctx)
}

func (controller *ReferenceController) SaveStandAdjacency(ctx echo.Context) error {
	data := &RequestSaveStandAdjacency{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveStandAdjacency bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveStandAdjacency(data).Response(ctx)
}

func (controller *ReferenceController) SaveAirlineAllocation(ctx echo.Context) error {
	data := &RequestSaveAirlineAllocation{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveAirlineAllocation bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveAirlineAllocation(data).Response(ctx)
}

func (controller *ReferenceController) SaveOperationalSettings(ctx echo.Context) error {
	data := &RequestSaveSettings{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.SaveOperationalSettings bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.SaveOperationalSettings(data).Response(ctx)
}

func (controller *ReferenceController) DeleteStand(ctx echo.Context) error {
	data := &RequestDeleteStand{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.DeleteStand bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.DeleteStand(data).Response(ctx)
}

func (controller *ReferenceController) DeleteAircraftType(ctx echo.Context) error {
	data := &RequestDeleteAircraftType{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ReferenceController.DeleteAircraftType bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	fillJwtHeader(ctx, &data.JwtHeader)
	return controller.service.DeleteAircraftType(data).Response(ctx)
}
