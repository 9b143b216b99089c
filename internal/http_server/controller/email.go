// Package controller
package controller

import (
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type EmailControllerInterface interface {
	SendVerifyEmail(ctx echo.Context) error
}

type EmailController struct {
	logger  log.LoggerInterface
	service EmailServiceInterface
}

func NewEmailController(logger log.LoggerInterface, service EmailServiceInterface) *EmailController {
	return &EmailController{
		logger:  logger,
		service: service,
	}
}

func (controller *EmailController) SendVerifyEmail(ctx echo.Context) error {
	data := &RequestEmailVerifyCode{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("EmailController.SendVerifyEmail bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.SendEmailVerifyCode(data).Response(ctx)
}
