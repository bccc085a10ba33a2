package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-booking/internal/api"
	"github.com/sanosuguru/go-cinema-booking/internal/api/handler"
	custommw "github.com/sanosuguru/go-cinema-booking/internal/api/middleware"
	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/config"
	"github.com/sanosuguru/go-cinema-booking/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-cinema-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-cinema-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-cinema-booking/internal/worker"
)

func main() {
	// .envファイルの読み込み（存在しない場合は無視）
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.NewLogger(os.Getenv("APP_ENV"))
	logger.Set(log)
	defer logger.Sync()

	m := metrics.Init()

	// PostgreSQL接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		log.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis接続（失敗してもロック・キャッシュなしで起動を継続する）
	var (
		lockManager redisinfra.LockManagerInterface
		cache       redisinfra.AvailabilityCacheInterface
	)
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis接続に失敗しました。分散ロックとキャッシュなしで継続します", zap.Error(err))
	} else {
		defer redisClient.Close()
		lockManager = redisinfra.NewLockManager(redisClient)
		cache = redisinfra.NewAvailabilityCache(redisClient)
	}

	// リポジトリ
	txManager := postgres.NewTxManager(db)
	movieRepo := postgres.NewMovieRepository(db)
	auditoriumRepo := postgres.NewAuditoriumRepository(db)
	seatRepo := postgres.NewSeatRepository(db)
	screeningRepo := postgres.NewScreeningRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// サービス
	movieService := application.NewMovieService(movieRepo, screeningRepo)
	auditoriumService := application.NewAuditoriumService(auditoriumRepo, screeningRepo)
	seatService := application.NewSeatService(seatRepo, auditoriumRepo, bookingRepo)
	screeningService := application.NewScreeningService(txManager, screeningRepo, movieRepo, auditoriumRepo, seatRepo, bookingRepo, cache)
	bookingService := application.NewBookingService(txManager, bookingRepo, screeningRepo, seatRepo, lockManager, cache, cfg.Booking.ExpirationMinutes)
	paymentService := application.NewPaymentService(txManager, paymentRepo, bookingRepo, cache)

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	movieHandler := handler.NewMovieHandler(movieService)
	auditoriumHandler := handler.NewAuditoriumHandler(auditoriumService)
	seatHandler := handler.NewSeatHandler(seatService)
	screeningHandler := handler.NewScreeningHandler(screeningService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Echo設定
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommw.SetupMiddleware(e)
	e.Use(custommw.PrometheusMiddleware(m))

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommw.MetricsAuth(cfg.Server.MetricsToken))

	// ルーティング
	v1 := e.Group("/api/v1")

	v1.POST("/movies", movieHandler.Create)
	v1.GET("/movies", movieHandler.List)
	v1.GET("/movies/:id", movieHandler.GetByID)
	v1.PUT("/movies/:id", movieHandler.Update)
	v1.DELETE("/movies/:id", movieHandler.Delete)
	v1.GET("/movies/:movie_id/screenings", screeningHandler.GetByMovie)

	v1.POST("/auditoriums", auditoriumHandler.Create)
	v1.GET("/auditoriums", auditoriumHandler.List)
	v1.GET("/auditoriums/:id", auditoriumHandler.GetByID)
	v1.PUT("/auditoriums/:id", auditoriumHandler.Update)
	v1.DELETE("/auditoriums/:id", auditoriumHandler.Delete)

	v1.POST("/auditoriums/:auditorium_id/seats", seatHandler.Create)
	v1.POST("/auditoriums/:auditorium_id/seats/bulk", seatHandler.CreateRow)
	v1.GET("/auditoriums/:auditorium_id/seats", seatHandler.GetByAuditorium)
	v1.GET("/seats/:id", seatHandler.GetByID)
	v1.DELETE("/seats/:id", seatHandler.Delete)

	v1.POST("/screenings", screeningHandler.Create)
	v1.GET("/screenings", screeningHandler.List)
	v1.GET("/screenings/:id", screeningHandler.GetByID)
	v1.PUT("/screenings/:id", screeningHandler.Update)
	v1.DELETE("/screenings/:id", screeningHandler.Delete)
	v1.GET("/screenings/:id/seats", screeningHandler.GetSeats)
	v1.GET("/screenings/:id/booked-count", screeningHandler.CountBooked)

	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/bookings", bookingHandler.GetUserBookings)
	v1.GET("/bookings/:id", bookingHandler.GetByID)
	v1.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	v1.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	v1.GET("/bookings/:booking_id/payment", paymentHandler.GetByBooking)

	v1.POST("/payments", paymentHandler.Create)
	v1.GET("/payments/:id", paymentHandler.GetByID)
	v1.POST("/payments/:id/refund", paymentHandler.Refund)

	// 期限切れ予約クリーナー（オプトイン）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var cleaner *worker.ExpiredBookingCleaner
	if cfg.Cleaner.Enabled {
		cleaner = worker.NewExpiredBookingCleaner(bookingService, m, cfg.Cleaner.Interval)
		go cleaner.Start(ctx)
	}

	// サーバー起動
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("サーバーをシャットダウンしています...")

	if cleaner != nil {
		cleaner.Stop()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	log.Info("サーバーが正常にシャットダウンしました")
}
