package handler

import (
	"net/http"

	"github.com/andresaguirresm-cpu/reportes-web/internal/api/handler/router"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/reporting"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Reports(service reporting.Reporter, upload UploadLimits) []router.Route {
	limit := LimitUpload(upload.MaxBytes)

	return []router.Route{
		{
			Path:        "/v1/reports/process",
			Method:      http.MethodPost,
			Handler:     ProcessReports(service),
			Middlewares: []func(http.Handler) http.Handler{limit},
		},
		{
			Path:        "/v1/reports/scan",
			Method:      http.MethodPost,
			Handler:     ScanCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{limit},
		},
	}
}

// CronJobs expõe o disparo manual e o status da limpeza de histórico
func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
