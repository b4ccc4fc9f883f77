package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/internal/api/handler"
	"github.com/andresaguirresm-cpu/reportes-web/internal/api/handler/router"
	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
	"github.com/andresaguirresm-cpu/reportes-web/internal/scheduler"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/reporting"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/apiErrors"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	reporter reporting.Reporter,
	db handler.Pinger,
	historyRetentionService *scheduler.HistoryRetentionService,
) (*Server, error) {
	if reporter == nil {
		return nil, errors.New("serviço de relatórios não configurado")
	}

	cronServices := handler.CronJobServices{
		HistoryRetentionService: historyRetentionService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Reports(reporter, handler.UploadLimits{MaxBytes: cfg.Server.MaxUploadMB << 20})...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Ruta no encontrada", nil)
		})),
	)

	chain := alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.CorsAllowedOrigins),
	).Then(rt)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// Handler expõe a cadeia HTTP completa
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
