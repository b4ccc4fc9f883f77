package handler

import (
	"net/http"

	"github.com/andresaguirresm-cpu/reportes-web/internal/scheduler"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const (
	CronJobTypeHistoryRetention = "history-retention"
	CronJobTypeAll              = "all"
)

// CronJobServices contém os agendadores que podem ser disparados manualmente
type CronJobServices struct {
	HistoryRetentionService *scheduler.HistoryRetentionService
}

func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logrus.WithField("type", cronType).Info("Disparo manual de cron job")

		switch cronType {
		case CronJobTypeHistoryRetention, CronJobTypeAll:
			if services.HistoryRetentionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de histórico não disponível", nil)
				return
			}
			services.HistoryRetentionService.TriggerManualCleanup()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: history-retention, all", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.HistoryRetentionService != nil {
			status[CronJobTypeHistoryRetention] = services.HistoryRetentionService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status)
	}
}
