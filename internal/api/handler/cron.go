package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/invoice-control-api/internal/scheduler"
	"github.com/vfg2006/invoice-control-api/pkg/apiErrors"
	"github.com/vfg2006/invoice-control-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeReportHistoryCleanup = "report-history-cleanup"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ReportHistoryCleanupService *scheduler.ReportHistoryCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		log.ForContext(r.Context()).WithField("cron_type", cronType).Info("Execução manual de cron job solicitada")

		switch cronType {
		case CronJobTypeReportHistoryCleanup:
			if services.ReportHistoryCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrFeatureDisabled, "Serviço de limpeza do histórico não disponível", nil)
				return
			}
			if err := services.ReportHistoryCleanupService.TriggerManualSync(); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrFeatureDisabled, err.Error(), nil)
				return
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeReportHistoryCleanup, nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ReportHistoryCleanupService != nil {
			status[CronJobTypeReportHistoryCleanup] = services.ReportHistoryCleanupService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
