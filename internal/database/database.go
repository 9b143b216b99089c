// Package database
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type databaseShutdownCallback struct {
	db *gorm.DB
}

func (callback *databaseShutdownCallback) Invoke(_ context.Context) error {
	pool, err := callback.db.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// ConnectDatabase 连接数据库, 迁移模型并组装操作集合
func ConnectDatabase(logger log.LoggerInterface, config *c.Config, debug bool) (*operation.DatabaseOperations, global.Callable, error) {
	dialector := config.Database.GetConnection(logger)
	if dialector == nil {
		return nil, nil, errors.New("unsupported database type")
	}

	connectionConfig := &gorm.Config{
		PrepareStmt:               true,
		DefaultTransactionTimeout: 5 * time.Second,
		Logger:                    gormLogger.Default.LogMode(gormLogger.Silent),
	}
	if debug {
		connectionConfig.Logger = gormLogger.Default.LogMode(gormLogger.Info)
	}

	db, err := gorm.Open(dialector, connectionConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("error occured while connecting to database: %w", err)
	}

	err = db.Migrator().AutoMigrate(
		&operation.SizeCategory{},
		&operation.AircraftType{},
		&operation.Terminal{},
		&operation.Pier{},
		&operation.Stand{},
		&operation.StandAircraftConstraint{},
		&operation.StandAdjacency{},
		&operation.TurnaroundRule{},
		&operation.OperationalSettings{},
		&operation.AirlineTerminalAllocation{},
		&operation.ScheduleScenario{},
		&operation.Flight{},
		&operation.Allocation{},
		&operation.MaintenanceRequest{},
		&operation.User{},
		&operation.AuditLog{},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error occured while migrating database: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("error occured while creating database pool: %w", err)
	}

	maxOpenConnections := float32(config.Database.ServerMaxConnections) * 0.8 // 不超过数据库最大连接的80%
	maxIdleConnections := maxOpenConnections / 5                              // 空闲连接约为最大连接的20%

	pool.SetMaxIdleConns(int(maxIdleConnections))
	pool.SetMaxOpenConns(int(maxOpenConnections))
	pool.SetConnMaxLifetime(config.Database.ConnectIdleDuration)
	if err := pool.Ping(); err != nil {
		return nil, nil, fmt.Errorf("error occured while pinging database: %w", err)
	}

	queryTimeout := config.Database.QueryDuration
	operations := operation.NewDatabaseOperations(
		NewUserOperation(db, queryTimeout, config.Server.General),
		NewReferenceOperation(db, queryTimeout),
		NewScheduleOperation(db, queryTimeout),
		NewMaintenanceOperation(db, queryTimeout),
		NewAuditLogOperation(logger, db, queryTimeout),
	)
	logger.InfoF("Database connected (%s)", config.Database.Type)
	return operations, &databaseShutdownCallback{db: db}, nil
}
