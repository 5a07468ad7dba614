package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-airport-reservation/internal/api"
	"github.com/sanosuguru/go-airport-reservation/internal/api/handler"
	custommiddleware "github.com/sanosuguru/go-airport-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/config"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
	"github.com/sanosuguru/go-airport-reservation/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-airport-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/token"
	"github.com/sanosuguru/go-airport-reservation/internal/worker"
)

func main() {
	// .env は存在すれば読み込む
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	m := metrics.Init()

	// データベース接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続エラー", zap.Error(err))
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションエラー", zap.Error(err))
	}

	// Redis接続
	redisClient := redisinfra.NewClient(&cfg.Redis)
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisinfra.Ping(ctx, redisClient); err != nil {
		logger.Fatal("Redis接続エラー", zap.Error(err))
	}
	cancel()

	// リポジトリ
	airportRepo := postgres.NewAirportRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	airplaneTypeRepo := postgres.NewAirplaneTypeRepository(db)
	airplaneRepo := postgres.NewAirplaneRepository(db)
	flightRepo := postgres.NewFlightRepository(db)
	crewRepo := postgres.NewCrewRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	txManager := postgres.NewTxManager(db)

	availabilityCache := redisinfra.NewAvailabilityCache(redisClient)
	tokenManager := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// サービス
	airportService := application.NewAirportService(airportRepo)
	routeService := application.NewRouteService(routeRepo)
	airplaneService := application.NewAirplaneService(airplaneTypeRepo, airplaneRepo)
	flightService := application.NewFlightService(flightRepo, availabilityCache, cfg.Cache.AvailabilityTTL)
	crewService := application.NewCrewService(crewRepo)
	orderService := application.NewOrderService(txManager, orderRepo, flightRepo, availabilityCache)
	userService := application.NewUserService(userRepo, tokenManager)

	// ハンドラー
	airportHandler := handler.NewAirportHandler(airportService)
	routeHandler := handler.NewRouteHandler(routeService)
	airplaneHandler := handler.NewAirplaneHandler(airplaneService)
	flightHandler := handler.NewFlightHandler(flightService)
	crewHandler := handler.NewCrewHandler(crewService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler()

	// Echo設定
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	// 認証不要
	v1.POST("/users/register", userHandler.Register)
	v1.POST("/users/login", userHandler.Login)

	// 認証必須
	auth := v1.Group("", custommiddleware.JWTAuth(tokenManager))
	admin := custommiddleware.RequireRole(user.RoleAdmin)

	auth.GET("/users/me", userHandler.GetMe)
	auth.PUT("/users/me", userHandler.UpdateMe)

	auth.GET("/airports", airportHandler.List)
	auth.GET("/airports/:id", airportHandler.GetByID)
	auth.POST("/airports", airportHandler.Create, admin)
	auth.PUT("/airports/:id", airportHandler.Update, admin)
	auth.DELETE("/airports/:id", airportHandler.Delete, admin)

	auth.GET("/routes", routeHandler.List)
	auth.GET("/routes/:id", routeHandler.GetByID)
	auth.POST("/routes", routeHandler.Create, admin)
	auth.PUT("/routes/:id", routeHandler.Update, admin)
	auth.DELETE("/routes/:id", routeHandler.Delete, admin)

	auth.GET("/airplane-types", airplaneHandler.ListTypes)
	auth.GET("/airplane-types/:id", airplaneHandler.GetTypeByID)
	auth.POST("/airplane-types", airplaneHandler.CreateType, admin)
	auth.PUT("/airplane-types/:id", airplaneHandler.UpdateType, admin)
	auth.DELETE("/airplane-types/:id", airplaneHandler.DeleteType, admin)

	auth.GET("/airplanes", airplaneHandler.List)
	auth.GET("/airplanes/:id", airplaneHandler.GetByID)
	auth.POST("/airplanes", airplaneHandler.Create, admin)
	auth.PUT("/airplanes/:id", airplaneHandler.Update, admin)
	auth.DELETE("/airplanes/:id", airplaneHandler.Delete, admin)

	auth.GET("/flights", flightHandler.List)
	auth.GET("/flights/:id", flightHandler.GetByID)
	auth.GET("/flights/:id/available-seats", flightHandler.GetAvailableSeats)
	auth.POST("/flights", flightHandler.Create, admin)
	auth.PUT("/flights/:id", flightHandler.Update, admin)
	auth.DELETE("/flights/:id", flightHandler.Delete, admin)

	auth.GET("/crews", crewHandler.List)
	auth.GET("/crews/:id", crewHandler.GetByID)
	auth.POST("/crews", crewHandler.Create, admin)
	auth.PUT("/crews/:id", crewHandler.Update, admin)
	auth.DELETE("/crews/:id", crewHandler.Delete, admin)

	auth.POST("/orders", orderHandler.Create)
	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:id", orderHandler.GetByID)

	// オーバーセル監視ワーカー
	monitorCtx, monitorCancel := context.WithCancel(context.Background())
	monitor := worker.NewOversellMonitor(flightRepo, m, cfg.Worker.OversellCheckInterval)
	go monitor.Start(monitorCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	monitorCancel()
	monitor.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
