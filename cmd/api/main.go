package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/config"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	appHTTP "github.com/cmlabs-hris/absensi-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/sheets"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/absensi-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/absensi-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/absensi-backend-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/absensi-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/absensi-backend-go/internal/service/auth"
	noticeService "github.com/cmlabs-hris/absensi-backend-go/internal/service/notice"
	rosterService "github.com/cmlabs-hris/absensi-backend-go/internal/service/roster"
	sessionService "github.com/cmlabs-hris/absensi-backend-go/internal/service/session"
	goredis "github.com/redis/go-redis/v9"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session store
	var (
		sessionStore session.Store
		purger       session.Purger
	)
	switch cfg.Store.Type {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.DefaultPoolOptions())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		store := postgresql.NewSessionStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare session schema: ", err)
		}
		sessionStore, purger = store, store
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Error connecting to redis: ", err)
		}
		defer client.Close()

		sessionStore = redisRepo.NewSessionStore(client, cfg.Attendance.SessionRetention)
	case config.StoreMemory:
		store := memory.NewSessionStore()
		sessionStore, purger = store, store
	default:
		log.Fatal("Unsupported session store: ", cfg.Store.Type)
	}

	locale, ok := attendance.LocaleByName(cfg.Attendance.Locale)
	if !ok {
		log.Fatal("Unsupported attendance locale: ", cfg.Attendance.Locale)
	}
	engine := attendance.NewEngine(
		attendance.NewNormalizer(locale, cfg.Location()),
		attendance.NewValidator(cfg.Attendance.MinRowID),
	)

	sheetsClient := sheets.NewClient(cfg.Backend.Timeout)
	hub := sse.NewHub(16)
	defer hub.CloseAll()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	sessionSvc := sessionService.NewSessionService(sessionStore)
	noticeSvc := noticeService.NewNoticeService(hub, noticeService.Config{TTL: cfg.Attendance.NoticeTTL})
	defer noticeSvc.Stop()
	rosterSvc := rosterService.NewRosterService(sheetsClient, cfg.Backend.ScriptURL)
	attendanceSvc := attendanceService.NewAttendanceService(engine, sheetsClient, sessionSvc, noticeSvc, attendanceService.Config{
		DefaultBackendURL: cfg.Backend.ScriptURL,
	})
	authService := serviceAuth.NewAuthService(rosterSvc, sessionSvc, attendanceSvc, noticeSvc, JWTService, cfg.Backend.ScriptURL)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authHandler := appHTTP.NewAuthHandler(authService, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	noticeHandler := appHTTP.NewNoticeHandler(noticeSvc, JWTService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       level,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		noticeHandler,
	)

	// Background maintenance
	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(rosterSvc, purger, JWTService, cfg.Attendance.RosterRefreshInterval, cfg.Attendance.SessionRetention).
		RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	// Warm the roster cache; login falls back to a direct fetch on failure
	if err := rosterSvc.Refresh(ctx); err != nil {
		slog.Warn("Initial roster fetch failed", "error", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	// Open SSE streams end with the hub
	hub.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
