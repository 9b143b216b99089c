package main

import (
	"flag"
	"fmt"

	"github.com/half-nothing/stand-planner/internal/base"
	"github.com/half-nothing/stand-planner/internal/database"
	"github.com/half-nothing/stand-planner/internal/http_server"
	"github.com/half-nothing/stand-planner/internal/interfaces"
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
)

func recoverFromError() {
	if r := recover(); r != nil {
		fmt.Printf("It looks like there are some serious errors, the details are as follows: %v", r)
	}
}

func main() {
	flag.Parse()

	defer recoverFromError()

	logger := base.NewLogger()
	logger.Init(*global.DebugMode)

	logger.Info("Application initializing...")

	cleaner := base.NewCleaner(logger)
	cleaner.Init()
	defer cleaner.Clean()

	configManager := base.NewManager(logger)
	config := configManager.Config()

	databaseOperation, shutdownCallback, err := database.ConnectDatabase(logger, config, *global.DebugMode)
	if err != nil {
		logger.FatalF("Error occurred while initializing operation, details: %v", err)
		return
	}

	cleaner.Add(shutdownCallback)

	applicationContent := interfaces.NewApplicationContent(configManager, cleaner, logger, databaseOperation)

	if !config.Server.HttpServer.Enabled {
		logger.Fatal("Http server disabled in config, nothing to serve")
		return
	}

	http_server.StartHttpServer(applicationContent)
}
