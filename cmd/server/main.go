package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/bughouse-backend/internal/config"
	"github.com/benbeisheim/bughouse-backend/internal/controller"
	"github.com/benbeisheim/bughouse-backend/internal/middleware"
	"github.com/benbeisheim/bughouse-backend/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(cfg.LogLevel)
	if cfg.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{DisableStartupMessage: !cfg.Pretty})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		logger.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("incoming request")
		return c.Next()
	})

	// Initialize services
	tableManager := service.NewTableManager(logger)
	tableManager.Start(ctx, cfg.MatchInterval)
	tableService := service.NewTableService(tableManager)

	// Initialize controllers
	tableController := controller.NewTableController(tableService, logger)
	wsController := controller.NewWebSocketController(tableService, logger)

	// Set up WebSocket routes
	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.Origins(),
	}
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/table/:tableId", middleware.WebSocketUpgrade("tableId"), websocket.New(wsController.HandleConnection, wsConfig))
	app.Get("/ws/matchmaking", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleMatchmaking, wsConfig))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	tableRoutes := api.Group("/table")
	tableRoutes.Post("/matchmaking/join", tableController.JoinMatchmaking)
	tableRoutes.Post("/matchmaking/leave", tableController.LeaveMatchmaking)
	tableRoutes.Get("/matchmaking/status", tableController.MatchmakingStatus)
	tableRoutes.Post("/create", tableController.CreateTable)
	tableRoutes.Post("/join/:tableId", tableController.JoinTable)
	tableRoutes.Get("/:tableId", tableController.GetTableState)
	tableRoutes.Get("/:tableId/board/:board/svg", tableController.BoardSVG)
	tableRoutes.Get("/:tableId/board/:board/moves", tableController.LegalMoves)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	logger.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
