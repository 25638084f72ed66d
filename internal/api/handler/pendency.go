package handler

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/invoice-control-api/internal/domain"
	"github.com/vfg2006/invoice-control-api/internal/usecases/loading"
	"github.com/vfg2006/invoice-control-api/internal/usecases/pendency"
	"github.com/vfg2006/invoice-control-api/pkg/apiErrors"
	"github.com/vfg2006/invoice-control-api/pkg/log"
	"github.com/vfg2006/invoice-control-api/pkg/middleware"
)

const (
	uploadField = "file"
	monthParam  = "month"

	// Parte do formulário mantida em memória, o restante vai para arquivos temporários
	multipartMemory = 8 << 20

	msgUploadFile  = "Envie a planilha de notas (.xlsx ou .csv) para começar."
	msgSelectMonth = "Selecione o mês de referência para gerar o relatório."
)

// NotReadyResponse indica que ainda falta a planilha ou o mês para gerar o relatório
type NotReadyResponse struct {
	Ready           bool              `json:"ready"`
	Message         string            `json:"message"`
	AvailableMonths []domain.MonthKey `json:"available_months,omitempty"`
}

type PreviewResponse struct {
	Ready bool `json:"ready"`
	*domain.InvoicePreview
}

type ReportResponse struct {
	Ready bool `json:"ready"`
	*domain.PendencyReport
}

// PreviewInvoices devolve as notas enviadas da planilha e os meses disponíveis
func PreviewInvoices(service pendency.PendencyService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := readUpload(w, r, maxUploadBytes)
		if err != nil {
			if errors.Is(err, pendency.ErrInputMissing) {
				writeJSON(w, r, http.StatusOK, NotReadyResponse{Message: msgUploadFile})
				return
			}
			writePendencyError(w, r, err)
			return
		}

		preview, err := service.Preview(r.Context(), upload)
		if err != nil {
			writePendencyError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, PreviewResponse{Ready: true, InvoicePreview: preview})
	}
}

// GetPendencies gera o relatório de empresas sem nota no mês informado
func GetPendencies(service pendency.PendencyService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := readUpload(w, r, maxUploadBytes)
		if err != nil {
			if errors.Is(err, pendency.ErrInputMissing) {
				writeJSON(w, r, http.StatusOK, NotReadyResponse{Message: msgUploadFile})
				return
			}
			writePendencyError(w, r, err)
			return
		}

		rawMonth := r.URL.Query().Get(monthParam)
		if rawMonth == "" {
			// Sem mês selecionado devolvemos as opções disponíveis na planilha
			preview, err := service.Preview(r.Context(), upload)
			if err != nil {
				writePendencyError(w, r, err)
				return
			}

			writeJSON(w, r, http.StatusOK, NotReadyResponse{
				Message:         msgSelectMonth,
				AvailableMonths: preview.AvailableMonths,
			})
			return
		}

		month, err := domain.ParseMonthKey(rawMonth)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidMonth, err.Error(), nil)
			return
		}

		report, err := service.Report(r.Context(), upload, month, requestedBy(r))
		if err != nil {
			writePendencyError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, ReportResponse{Ready: true, PendencyReport: report})
	}
}

// ExportPendencies devolve o relatório como anexo CSV
func ExportPendencies(service pendency.PendencyService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := readUpload(w, r, maxUploadBytes)
		if err != nil {
			writePendencyError(w, r, err)
			return
		}

		month, err := domain.ParseMonthKey(r.URL.Query().Get(monthParam))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidMonth, msgSelectMonth, nil)
			return
		}

		fileName, content, err := service.Export(r.Context(), upload, month, requestedBy(r))
		if err != nil {
			writePendencyError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar arquivo CSV")
		}
	}
}

// readUpload lê a parte "file" do formulário multipart respeitando UPLOAD_MAX_BYTES
func readUpload(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (*domain.PendencyUpload, error) {
	if maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, pendency.ErrInputMissing
		}
		return nil, err
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, pendency.ErrInputMissing
		}
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	if len(content) == 0 {
		return nil, pendency.ErrInputMissing
	}

	return &domain.PendencyUpload{
		FileName: header.Filename,
		Content:  content,
	}, nil
}

func requestedBy(r *http.Request) string {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserEmail
	}
	return ""
}

// writePendencyError converte os erros do relatório em respostas da API
func writePendencyError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		schemaErr   *loading.SchemaError
		pendencyErr *pendency.PendencyError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &schemaErr):
		details := map[string]any{}
		if len(schemaErr.Missing) > 0 {
			details["missing_columns"] = schemaErr.Missing
		} else {
			details["row"] = schemaErr.Row
			details["column"] = schemaErr.Column
			details["value"] = schemaErr.Value
		}
		apiErrors.WriteError(w, apiErrors.ErrSchema, schemaErr.Error(), details)

	case errors.As(err, &pendencyErr):
		apiErrors.WriteError(w, pendencyErr.Code, pendencyErr.Error(), nil)

	case errors.Is(err, pendency.ErrInputMissing):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, msgUploadFile, nil)

	case errors.As(err, &maxBytesErr):
		apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do limite permitido", map[string]any{
			"limit_bytes": maxBytesErr.Limit,
		})

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado ao processar planilha")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível processar o arquivo enviado", nil)
	}
}
