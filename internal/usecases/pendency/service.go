package pendency

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/invoice-control-api/infrastructure/export"
	"github.com/vfg2006/invoice-control-api/infrastructure/repository"
	"github.com/vfg2006/invoice-control-api/infrastructure/spreadsheet"
	"github.com/vfg2006/invoice-control-api/internal/config"
	"github.com/vfg2006/invoice-control-api/internal/domain"
	"github.com/vfg2006/invoice-control-api/internal/usecases/loading"
	"github.com/vfg2006/invoice-control-api/pkg/apiErrors"
	"github.com/vfg2006/invoice-control-api/pkg/log"
	"github.com/vfg2006/invoice-control-api/pkg/utils"
)

const (
	emptyReportMessage = "Parabéns! Sem notas para emitir nesse período (%s)."
	reportMessage      = "Empresas que ainda precisam emitir nota para o mês %s:"

	defaultHistoryLimit = 50
)

type PendencyService interface {
	Preview(ctx context.Context, upload *domain.PendencyUpload) (*domain.InvoicePreview, error)
	Report(ctx context.Context, upload *domain.PendencyUpload, month domain.MonthKey, requestedBy string) (*domain.PendencyReport, error)
	Export(ctx context.Context, upload *domain.PendencyUpload, month domain.MonthKey, requestedBy string) (string, []byte, error)
	History(ctx context.Context, limit int) ([]*domain.ReportHistoryEntry, error)
	HistoryEntry(ctx context.Context, id string) (*domain.ReportHistoryEntry, error)
}

type Service struct {
	reader      spreadsheet.Reader
	historyRepo repository.ReportHistoryRepository // nil quando o histórico está desativado
	stage       string
	exportOpts  export.Options

	now        func() time.Time
	generateID func() (string, error)
}

func NewService(
	reader spreadsheet.Reader,
	historyRepo repository.ReportHistoryRepository,
	cfg *config.Config,
) *Service {
	stage := cfg.Invoice.Stage
	if stage == "" {
		stage = loading.DefaultStage
	}

	return &Service{
		reader:      reader,
		historyRepo: historyRepo,
		stage:       stage,
		exportOpts:  export.Options{BOMPrefix: cfg.Invoice.ExportCSVBOM},
		now:         time.Now,
		generateID:  utils.GenerateID,
	}
}

// Preview carrega a planilha e devolve as notas enviadas com os meses disponíveis
func (s *Service) Preview(ctx context.Context, upload *domain.PendencyUpload) (*domain.InvoicePreview, error) {
	table, err := s.load(ctx, upload)
	if err != nil {
		return nil, err
	}

	return &domain.InvoicePreview{
		Source:          upload.FileName,
		Header:          table.Header,
		Invoices:        table.Records,
		AvailableMonths: AvailableMonths(table),
		Total:           len(table.Records),
	}, nil
}

// Report gera o relatório de empresas sem nota no mês informado
func (s *Service) Report(
	ctx context.Context,
	upload *domain.PendencyUpload,
	month domain.MonthKey,
	requestedBy string,
) (*domain.PendencyReport, error) {
	if month.IsZero() {
		return nil, NewPendencyError(ErrMonthNotSelected, apiErrors.ErrInvalidMonth, "Selecione o mês de referência")
	}

	table, err := s.load(ctx, upload)
	if err != nil {
		return nil, err
	}

	pendencies, months := ComputePendencies(table, month)

	id, err := s.generateID()
	if err != nil {
		return nil, NewPendencyError(ErrReportIDGenerator, apiErrors.ErrInternalServer, err.Error())
	}

	report := &domain.PendencyReport{
		ID:              id,
		Source:          upload.FileName,
		SelectedMonth:   month,
		AvailableMonths: months,
		Pendencies:      pendencies,
		TotalCompanies:  CountCompanies(table),
		GeneratedAt:     s.now(),
	}

	if report.Empty() {
		report.Message = fmt.Sprintf(emptyReportMessage, month)
	} else {
		report.Message = fmt.Sprintf(reportMessage, month)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"month":            month.String(),
		"source":           report.Source,
		"user_email":       requestedBy,
		"report_id":        report.ID,
		"total_companies":  report.TotalCompanies,
		"total_pendencies": len(report.Pendencies),
	}).Info("pendency-report: relatório gerado")

	s.recordHistory(ctx, report, requestedBy)

	return report, nil
}

// Export gera o relatório e devolve o nome do arquivo e o conteúdo CSV
func (s *Service) Export(
	ctx context.Context,
	upload *domain.PendencyUpload,
	month domain.MonthKey,
	requestedBy string,
) (string, []byte, error) {
	report, err := s.Report(ctx, upload, month, requestedBy)
	if err != nil {
		return "", nil, err
	}

	content, err := export.PendencyCSV(report, s.exportOpts)
	if err != nil {
		return "", nil, NewPendencyError(err, apiErrors.ErrInternalServer, "Erro ao gerar o arquivo CSV")
	}

	return export.FileName(month), content, nil
}

// History lista os relatórios gerados, do mais recente para o mais antigo
func (s *Service) History(ctx context.Context, limit int) ([]*domain.ReportHistoryEntry, error) {
	if s.historyRepo == nil {
		return nil, NewPendencyError(ErrHistoryDisabled, apiErrors.ErrFeatureDisabled, "Ative REPORT_HISTORY_ENABLED para consultar o histórico")
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.historyRepo.List(limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("pendency-history: erro ao listar relatórios")
		return nil, NewPendencyError(ErrHistoryOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar relatórios no banco de dados")
	}

	return entries, nil
}

func (s *Service) HistoryEntry(ctx context.Context, id string) (*domain.ReportHistoryEntry, error) {
	if s.historyRepo == nil {
		return nil, NewPendencyError(ErrHistoryDisabled, apiErrors.ErrFeatureDisabled, "Ative REPORT_HISTORY_ENABLED para consultar o histórico")
	}

	entry, err := s.historyRepo.GetByID(id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("report_id", id).Error("pendency-history: erro ao buscar relatório")
		return nil, NewPendencyError(ErrHistoryOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar relatório no banco de dados")
	}

	if entry == nil {
		return nil, NewPendencyError(ErrReportNotFound, apiErrors.ErrNotFound, fmt.Sprintf("ID %s", id))
	}

	return entry, nil
}

// load lê o arquivo enviado e aplica o filtro de fase do negócio
func (s *Service) load(ctx context.Context, upload *domain.PendencyUpload) (*domain.InvoiceTable, error) {
	if upload == nil || len(upload.Content) == 0 {
		return nil, NewPendencyError(ErrInputMissing, apiErrors.ErrMissingRequiredData, "Envie a planilha de notas")
	}

	raw, err := s.reader.Read(upload.FileName, bytes.NewReader(upload.Content))
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("source", upload.FileName).Warn("pendency-load: erro ao ler planilha")

		switch {
		case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
			return nil, NewPendencyError(ErrUnsupportedFile, apiErrors.ErrUnsupportedFile, "Envie um arquivo .xlsx ou .csv")
		case errors.Is(err, spreadsheet.ErrEmptySheet), errors.Is(err, spreadsheet.ErrSheetNotFound):
			return nil, NewPendencyError(ErrUnreadableFile, apiErrors.ErrSchema, err.Error())
		default:
			return nil, NewPendencyError(ErrUnreadableFile, apiErrors.ErrInvalidFormat, err.Error())
		}
	}

	table, err := loading.Load(raw, s.stage)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("source", upload.FileName).Warn("pendency-load: planilha rejeitada")
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source":         upload.FileName,
		"total_rows":     len(raw.Rows),
		"total_invoices": len(table.Records),
	}).Debug("pendency-load: planilha carregada")

	return table, nil
}

func (s *Service) recordHistory(ctx context.Context, report *domain.PendencyReport, requestedBy string) {
	if s.historyRepo == nil {
		return
	}

	entry := &domain.ReportHistoryEntry{
		ID:               report.ID,
		SelectedMonth:    report.SelectedMonth.String(),
		SourceFile:       report.Source,
		TotalCompanies:   report.TotalCompanies,
		PendingCompanies: report.CompanyNames(),
		CreatedBy:        requestedBy,
		CreatedAt:        report.GeneratedAt,
	}

	if err := s.historyRepo.Save(entry); err != nil {
		log.ForContext(ctx).WithError(err).WithField("report_id", report.ID).Warn("pendency-history: erro ao registrar relatório")
	}
}
