package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/config"
	"github.com/shiftcrew/staffing-backend-go/internal/handler/http/middleware"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	shiftHandler ShiftHandler,
	staffingHandler StaffingHandler,
	timesheetHandler TimesheetHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftcrew-staffing"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
			r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
		})

		// The SSE stream authenticates with its own short-lived token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Post("/", shiftHandler.Create)
				r.Get("/", shiftHandler.List)

				r.Route("/{shiftID}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Get("/requirements", shiftHandler.GetRequirements)
					r.Put("/requirements", shiftHandler.SetRequirements)
					r.Get("/fulfillment", shiftHandler.GetFulfillment)

					r.Get("/assignments", staffingHandler.ListByShift)
					r.Post("/assignments", staffingHandler.Assign)

					// Administrative recovery for stuck completion detection
					r.Group(func(r chi.Router) {
						r.Use(middleware.StaffOnly)
						r.Post("/completion/recheck", staffingHandler.RecheckCompletion)
					})
				})
			})

			r.Route("/assignments/{assignmentID}", func(r chi.Router) {
				r.Delete("/", staffingHandler.Unassign)
				r.Post("/clock-in", staffingHandler.ClockIn)
				r.Post("/clock-out", staffingHandler.ClockOut)
				r.Post("/end", staffingHandler.EndShift)
				r.Post("/no-show", staffingHandler.MarkNoShow)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", timesheetHandler.Create)
				r.Get("/", timesheetHandler.List)

				r.Route("/{timesheetID}", func(r chi.Router) {
					r.Get("/", timesheetHandler.Get)
					r.Post("/approve/company", timesheetHandler.ApproveAsCompany)
					r.Post("/approve/manager", timesheetHandler.ApproveAsManager)
					r.Post("/reject", timesheetHandler.Reject)
					r.Post("/regenerate-pdf", timesheetHandler.RegeneratePDF)
				})
			})

			r.Get("/reports/timesheets/export", reportHandler.ExportTimesheets)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{notificationID}/read", notificationHandler.MarkAsRead)
				r.Post("/sse-token", notificationHandler.GetSSEToken)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/admin/migrate-legacy-roles", shiftHandler.MigrateLegacyRoles)
			})
		})
	})

	return r
}
