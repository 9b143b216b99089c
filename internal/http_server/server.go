// Package http_server
package http_server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/half-nothing/stand-planner/internal/http_server/controller"
	mid "github.com/half-nothing/stand-planner/internal/http_server/middleware"
	impl "github.com/half-nothing/stand-planner/internal/http_server/service"
	"github.com/half-nothing/stand-planner/internal/http_server/service/store"
	. "github.com/half-nothing/stand-planner/internal/interfaces"
	"github.com/half-nothing/stand-planner/internal/interfaces/service"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	slogecho "github.com/samber/slog-echo"
)

type HttpServerShutdownCallback struct {
	serverHandler *echo.Echo
}

func NewHttpServerShutdownCallback(serverHandler *echo.Echo) *HttpServerShutdownCallback {
	return &HttpServerShutdownCallback{
		serverHandler: serverHandler,
	}
}

func (hc *HttpServerShutdownCallback) Invoke(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.serverHandler.Shutdown(timeoutCtx)
}

func StartHttpServer(applicationContent *ApplicationContent) {
	config := applicationContent.ConfigManager().Config()
	logger := applicationContent.Logger()

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.Logger.SetLevel(log.OFF)
	httpConfig := config.Server.HttpServer

	switch httpConfig.ProxyType {
	case 0:
		e.IPExtractor = echo.ExtractIPDirect()
	case 1:
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	case 2:
		e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	default:
		logger.WarnF("Invalid proxy type %d, using default (direct)", httpConfig.ProxyType)
		e.IPExtractor = echo.ExtractIPDirect()
	}

	if httpConfig.SSL.ForceSSL {
		e.Use(middleware.HTTPSRedirect())
	}

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: 30 * time.Second}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(ctx echo.Context, err error, stack []byte) error {
			logger.ErrorF("Recovered from a fatal error: %v, stack: %s", err, string(stack))
			return err
		},
	}))

	loggerConfig := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}
	e.Use(slogecho.NewWithConfig(slog.Default(), loggerConfig))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            httpConfig.SSL.HstsExpiredTime,
		HSTSExcludeSubdomains: !httpConfig.SSL.IncludeDomain,
	}))
	e.Use(middleware.CORS())
	if httpConfig.BodyLimit != "" {
		e.Use(middleware.BodyLimit(httpConfig.BodyLimit))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	if httpConfig.Limits.RateLimit <= 0 {
		logger.WarnF("Invalid rate limit value %d, using default 15", httpConfig.Limits.RateLimit)
		httpConfig.Limits.RateLimit = 15
	}

	if httpConfig.Limits.RateLimitDuration <= 0 {
		logger.WarnF("Invalid rate limit duration %v, using default 1m", httpConfig.Limits.RateLimitDuration)
		httpConfig.Limits.RateLimitDuration = time.Minute
	}

	ipPathLimiter := mid.NewSlidingWindowLimiter(
		httpConfig.Limits.RateLimitDuration,
		httpConfig.Limits.RateLimit,
	)
	cleanupInterval := httpConfig.Limits.RateLimitDuration * 2
	if cleanupInterval > time.Hour {
		cleanupInterval = time.Hour
		logger.InfoF("Limiting cleanup interval to 1 hour for efficiency")
	}
	ipPathLimiter.StartCleanup(cleanupInterval)

	e.Use(mid.RateLimitMiddleware(ipPathLimiter, mid.CombinedKeyFunc))

	jwtConfig := echojwt.Config{
		SigningKey:    []byte(httpConfig.JWT.Secret),
		TokenLookup:   "header:Authorization:Bearer ",
		SigningMethod: "HS512",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var data *service.ApiResponse[any]
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				data = service.NewApiResponse[any](&service.ErrMissingOrMalformedJwt, service.Unsatisfied, nil)
			case errors.Is(err, echojwt.ErrJWTInvalid):
				data = service.NewApiResponse[any](&service.ErrInvalidOrExpiredJwt, service.Unsatisfied, nil)
			default:
				data = service.NewApiResponse[any](&service.ErrUnknown, service.Unsatisfied, nil)
			}
			return data.Response(c)
		},
	}

	jwtMiddleware := echojwt.WithConfig(jwtConfig)

	emailService := impl.NewEmailService(logger, httpConfig.Email)
	impl.InitValidator(httpConfig.Limits)

	var storeService service.StoreServiceInterface
	storeService = store.NewLocalStoreService(logger, httpConfig.Store)
	switch httpConfig.Store.StoreType {
	case 1:
		storeService = store.NewALiYunOssStoreService(logger, httpConfig.Store, storeService)
	case 2:
		storeService = store.NewTencentCosStoreService(logger, httpConfig.Store, storeService)
	}

	operations := applicationContent.Operations()
	userOperation := operations.UserOperation()
	referenceOperation := operations.ReferenceOperation()
	maintenanceOperation := operations.MaintenanceOperation()
	auditLogOperation := operations.AuditLogOperation()

	userService := impl.NewUserService(logger, httpConfig, userOperation, auditLogOperation, emailService)
	referenceService := impl.NewReferenceService(logger, userOperation, referenceOperation, auditLogOperation)
	planService := impl.NewPlanService(logger, httpConfig, config.Server.Planner, operations, storeService)
	maintenanceService := impl.NewMaintenanceService(logger, userOperation, referenceOperation, maintenanceOperation, auditLogOperation, emailService)
	auditLogService := impl.NewAuditService(logger, userOperation, auditLogOperation)

	userController := controller.NewUserHandler(logger, userService)
	emailController := controller.NewEmailController(logger, emailService)
	referenceController := controller.NewReferenceController(logger, referenceService)
	planController := controller.NewPlanController(logger, planService)
	maintenanceController := controller.NewMaintenanceController(logger, maintenanceService)
	auditLogController := controller.NewAuditLogController(logger, auditLogService)

	apiGroup := e.Group("/api")
	apiGroup.POST("/sessions", userController.UserLogin)
	apiGroup.POST("/codes", emailController.SendVerifyEmail)
	apiGroup.GET("/profile", userController.GetCurrentUserProfile, jwtMiddleware)

	userGroup := apiGroup.Group("/users")
	userGroup.POST("", userController.UserRegister)
	userGroup.GET("", userController.GetUsers, jwtMiddleware)
	userGroup.GET("/availability", userController.CheckUserAvailability)
	userGroup.PATCH("/:uid/permission", userController.EditUserPermission, jwtMiddleware)

	referenceGroup := apiGroup.Group("/references", jwtMiddleware)
	referenceGroup.GET("/terminals", referenceController.GetTerminals)
	referenceGroup.PUT("/terminals", referenceController.SaveTerminal)
	referenceGroup.PUT("/piers", referenceController.SavePier)
	referenceGroup.GET("/stands", referenceController.GetStands)
	referenceGroup.PUT("/stands", referenceController.SaveStand)
	referenceGroup.DELETE("/stands/:id", referenceController.DeleteStand)
	referenceGroup.GET("/aircraft-types", referenceController.GetAircraftTypes)
	referenceGroup.PUT("/aircraft-types", referenceController.SaveAircraftType)
	referenceGroup.DELETE("/aircraft-types/:id", referenceController.DeleteAircraftType)
	referenceGroup.GET("/size-categories", referenceController.GetSizeCategories)
	referenceGroup.PUT("/size-categories", referenceController.SaveSizeCategory)
	referenceGroup.PUT("/turnaround-rules", referenceController.SaveTurnaroundRule)
	referenceGroup.PUT("/constraints", referenceController.SaveStandConstraint)
	referenceGroup.PUT("/adjacencies", referenceController.SaveStandAdjacency)
	referenceGroup.PUT("/airline-allocations", referenceController.SaveAirlineAllocation)
	referenceGroup.GET("/settings", referenceController.GetOperationalSettings)
	referenceGroup.PUT("/settings", referenceController.SaveOperationalSettings)

	scenarioGroup := apiGroup.Group("/scenarios", jwtMiddleware)
	scenarioGroup.POST("", planController.CreateScenario)
	scenarioGroup.GET("", planController.GetScenarios)
	scenarioGroup.GET("/:id", planController.GetScenarioDetail)
	scenarioGroup.POST("/:id/schedules", planController.UploadSchedule)
	scenarioGroup.POST("/:id/allocations", planController.RunAllocation)
	scenarioGroup.GET("/:id/progress", planController.GetRunProgress)

	capacityGroup := apiGroup.Group("/capacity", jwtMiddleware)
	capacityGroup.GET("", planController.CapacityReport)
	capacityGroup.GET("/impact", planController.MaintenanceImpact)

	maintenanceGroup := apiGroup.Group("/maintenances", jwtMiddleware)
	maintenanceGroup.POST("", maintenanceController.CreateRequest)
	maintenanceGroup.GET("", maintenanceController.GetRequests)
	maintenanceGroup.GET("/:id", maintenanceController.GetRequestDetail)
	maintenanceGroup.PUT("/:id/status", maintenanceController.TransitionRequest)

	auditLogGroup := apiGroup.Group("/audits")
	auditLogGroup.GET("", auditLogController.GetAuditLogs, jwtMiddleware)

	apiGroup.Use(middleware.Static(httpConfig.Store.LocalStorePath))

	applicationContent.Cleaner().Add(NewHttpServerShutdownCallback(e))

	protocol := "http"
	if httpConfig.SSL.Enable {
		protocol = "https"
	}
	logger.InfoF("Starting %s server on %s", protocol, httpConfig.Address)
	logger.InfoF("Rate limit: %d requests per %v",
		httpConfig.Limits.RateLimit,
		httpConfig.Limits.RateLimitDuration)

	var err error
	if httpConfig.SSL.Enable {
		err = e.StartTLS(
			httpConfig.Address,
			httpConfig.SSL.CertFile,
			httpConfig.SSL.KeyFile,
		)
	} else {
		err = e.Start(httpConfig.Address)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FatalF("Http server error: %v", err)
	}
}
