package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/invoice-control-api/internal/usecases/pendency"
	"github.com/vfg2006/invoice-control-api/pkg/apiErrors"
)

const maxHistoryLimit = 500

// ListReports lista o histórico de relatórios gerados
func ListReports(service pendency.PendencyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit deve ser um número positivo", nil)
				return
			}
			limit = min(parsed, maxHistoryLimit)
		}

		entries, err := service.History(r.Context(), limit)
		if err != nil {
			writePendencyError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"reports": entries,
			"total":   len(entries),
		})
	}
}

// GetReport retorna um relatório do histórico pelo ID
func GetReport(service pendency.PendencyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório é obrigatório", nil)
			return
		}

		entry, err := service.HistoryEntry(r.Context(), id)
		if err != nil {
			writePendencyError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entry)
	}
}
