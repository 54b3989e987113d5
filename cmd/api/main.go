package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/config"
	appHTTP "github.com/shiftcrew/staffing-backend-go/internal/handler/http"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/cache"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/cron"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/database"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/docgen"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/email"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/jwt"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/oauth"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/sse"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/storage"
	"github.com/shiftcrew/staffing-backend-go/internal/repository/postgresql"
	authService "github.com/shiftcrew/staffing-backend-go/internal/service/auth"
	notificationService "github.com/shiftcrew/staffing-backend-go/internal/service/notification"
	reportService "github.com/shiftcrew/staffing-backend-go/internal/service/report"
	shiftService "github.com/shiftcrew/staffing-backend-go/internal/service/shift"
	staffingService "github.com/shiftcrew/staffing-backend-go/internal/service/staffing"
	timesheetService "github.com/shiftcrew/staffing-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	docgenClient := docgen.NewClient(cfg.DocGen)
	hub := sse.NewHub()
	appCache := cache.New(cfg.Cache.DefaultTTL)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	notifService := notificationService.NewNotificationService(notificationRepo, userRepo, hub, emailService, notificationService.Config{})
	authSvc := authService.NewAuthService(userRepo, jwtService, googleService)
	shiftSvc := shiftService.NewShiftService(txManager, shiftRepo, jobRepo, assignmentRepo, appCache)
	staffingSvc := staffingService.NewStaffingService(txManager, assignmentRepo, timeEntryRepo, shiftRepo, userRepo, timesheetRepo, appCache, notifService)
	timesheetSvc := timesheetService.NewTimesheetService(txManager, timesheetRepo, shiftRepo, assignmentRepo, userRepo, docgenClient, fileStorage, notifService)
	reportSvc := reportService.NewReportService(timesheetRepo, assignmentRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	staffingHandler := appHTTP.NewStaffingHandler(staffingSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, jwtService, hub)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("cache-sweep", 5*time.Minute, func(ctx context.Context) error {
		appCache.Sweep()
		return nil
	})
	scheduler.AddJob("revoked-token-sweep", time.Hour, func(ctx context.Context) error {
		jwtService.SweepRevoked(time.Now())
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		shiftHandler,
		staffingHandler,
		timesheetHandler,
		reportHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
