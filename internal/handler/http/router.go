package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/handler/http/middleware"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/jwt"
)

// RouterOptions carries the transport settings that do not belong to a handler.
type RouterOptions struct {
	Logger      *slog.Logger
	CORSOrigins []string
	// UploadDir is served read-only under /uploads to authenticated callers.
	UploadDir string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authorizer auth.Authorizer,
	timeclockHandler TimeclockHandler,
	justificationHandler JustificationHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	approver := middleware.RequireApprover(authorizer)

	r.Route("/api/v1/ponto-eletronico", func(r chi.Router) {
		// EventSource cannot set headers; the stream authenticates with its own token.
		r.Get("/notificacoes/stream", notificationHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/funcionarios", timeclockHandler.ListEmployees)

			r.Route("/registros", func(r chi.Router) {
				r.Get("/", timeclockHandler.ListRecords)
				r.Post("/", timeclockHandler.RegisterStamp)
				r.Get("/estatisticas", reportHandler.RecordStatistics)
				r.Get("/validar", timeclockHandler.ValidateRecords)
				r.Post("/calcular", timeclockHandler.Recalculate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", timeclockHandler.GetRecord)
					r.Put("/", timeclockHandler.EditStamp)
					r.Get("/eventos", timeclockHandler.ListEvents)
					r.Post("/enviar-aprovacao", timeclockHandler.SubmitForApproval)

					r.Group(func(r chi.Router) {
						r.Use(approver)
						r.Post("/aprovar", timeclockHandler.Approve)
						r.Post("/rejeitar", timeclockHandler.Reject)
						r.Post("/aprovar-assinatura", timeclockHandler.ApproveWithSignature)
					})
				})
			})

			r.Get("/aprovacoes/pendentes", timeclockHandler.ListPendingApprovals)
			r.Get("/historico/{registro_id}", timeclockHandler.ListHistory)
			r.Get("/obras/{obra_id}/gestores", timeclockHandler.ListManagers)
			r.Get("/resumo-horas-extras", reportHandler.OvertimeSummary)

			r.Route("/horas-extras", func(r chi.Router) {
				r.Use(approver)
				r.Post("/aprovar-lote", timeclockHandler.ApproveBatch)
				r.Post("/rejeitar-lote", timeclockHandler.RejectBatch)
			})

			r.Route("/trabalho-corrido", func(r chi.Router) {
				r.Get("/pendentes", timeclockHandler.ListPendingContinuousWork)
				r.With(approver).Post("/confirmar", timeclockHandler.ConfirmContinuousWork)
			})

			r.Route("/justificativas", func(r chi.Router) {
				r.Get("/", justificationHandler.List)
				r.Post("/", justificationHandler.Create)

				r.Group(func(r chi.Router) {
					r.Use(approver)
					r.Post("/{id}/aprovar", justificationHandler.Approve)
					r.Post("/{id}/rejeitar", justificationHandler.Reject)
				})
			})

			r.Route("/relatorios", func(r chi.Router) {
				r.Get("/mensal", reportHandler.MonthlyReport)
				r.Get("/horas-extras", reportHandler.OvertimeReport)
				r.Get("/justificativas/mensal", justificationHandler.MonthlyReport)
				r.Get("/justificativas/periodo", justificationHandler.PeriodReport)
				r.Get("/justificativas/estatisticas", justificationHandler.Statistics)
			})

			r.Route("/notificacoes", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/nao-lidas", notificationHandler.UnreadCount)
				r.Get("/stream-token", notificationHandler.GetSSEToken)
				r.Patch("/lidas", notificationHandler.MarkAllAsRead)
				r.Patch("/{id}/lida", notificationHandler.MarkAsRead)
			})

			if opts.UploadDir != "" {
				r.Handle("/uploads/*", http.StripPrefix("/api/v1/ponto-eletronico/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
			}
		})
	})
	return r
}
