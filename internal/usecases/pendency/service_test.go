package pendency

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/invoice-control-api/infrastructure/repository/mocks"
	"github.com/vfg2006/invoice-control-api/infrastructure/spreadsheet"
	"github.com/vfg2006/invoice-control-api/internal/config"
	"github.com/vfg2006/invoice-control-api/internal/domain"
	"github.com/vfg2006/invoice-control-api/internal/usecases/loading"
	"github.com/vfg2006/invoice-control-api/pkg/apiErrors"
	"github.com/vfg2006/invoice-control-api/pkg/log"
	"go.uber.org/mock/gomock"
)

const invoicesCSV = `Nome;Fase do negócio;Data Recebimento;Valor
Acme;NF Enviadas;10/01/2024;100
Beta;NF Enviadas;15/01/2024;200
Acme;NF Enviadas;05/02/2024;150
Rascunho Ltda;Draft;05/02/2024;10
`

var generatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mocks.MockReportHistoryRepository) *Service {
	log.SetupTestLogger(nil)

	cfg := &config.Config{Invoice: config.Invoice{Stage: loading.DefaultStage}}

	// um *MockReportHistoryRepository nulo viraria uma interface não nula
	var svc *Service
	if repo != nil {
		svc = NewService(spreadsheet.NewReader(spreadsheet.Options{}), repo, cfg)
	} else {
		svc = NewService(spreadsheet.NewReader(spreadsheet.Options{}), nil, cfg)
	}

	svc.now = func() time.Time { return generatedAt }
	svc.generateID = func() (string, error) { return "abc123", nil }
	return svc
}

func upload() *domain.PendencyUpload {
	return &domain.PendencyUpload{FileName: "notas.csv", Content: []byte(invoicesCSV)}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var pendencyErr *PendencyError
	require.True(t, errors.As(err, &pendencyErr), "erro inesperado: %v", err)
	assert.Equal(t, code, pendencyErr.Code)
}

func TestService_Preview(t *testing.T) {
	svc := newTestService(nil)

	preview, err := svc.Preview(context.Background(), upload())
	require.NoError(t, err)

	assert.Equal(t, "notas.csv", preview.Source)
	assert.Equal(t, 3, preview.Total)
	assert.Len(t, preview.Invoices, 3)
	assert.Equal(t, []domain.MonthKey{feb2024, jan2024}, preview.AvailableMonths)
	assert.Equal(t, []string{"Nome", "Fase do negócio", "Data Recebimento", "Valor"}, preview.Header)
}

func TestService_Report(t *testing.T) {
	svc := newTestService(nil)

	report, err := svc.Report(context.Background(), upload(), feb2024, "ana@empresa.com")
	require.NoError(t, err)

	assert.Equal(t, "abc123", report.ID)
	assert.Equal(t, feb2024, report.SelectedMonth)
	assert.Equal(t, []string{"Beta"}, report.CompanyNames())
	assert.Equal(t, 2, report.TotalCompanies)
	assert.Equal(t, "Empresas que ainda precisam emitir nota para o mês 2024-02:", report.Message)
	assert.Equal(t, generatedAt, report.GeneratedAt)
}

func TestService_Report_EmptyResult(t *testing.T) {
	svc := newTestService(nil)

	report, err := svc.Report(context.Background(), upload(), jan2024, "")
	require.NoError(t, err)

	assert.True(t, report.Empty())
	assert.Equal(t, "Parabéns! Sem notas para emitir nesse período (2024-01).", report.Message)
}

func TestService_Report_Errors(t *testing.T) {
	tests := []struct {
		name   string
		upload *domain.PendencyUpload
		month  domain.MonthKey
		code   string
		target error
	}{
		{
			name:   "sem arquivo",
			upload: nil,
			month:  jan2024,
			code:   apiErrors.ErrMissingRequiredData,
			target: ErrInputMissing,
		},
		{
			name:   "arquivo vazio",
			upload: &domain.PendencyUpload{FileName: "notas.csv"},
			month:  jan2024,
			code:   apiErrors.ErrMissingRequiredData,
			target: ErrInputMissing,
		},
		{
			name:   "mês não selecionado",
			upload: upload(),
			code:   apiErrors.ErrInvalidMonth,
			target: ErrMonthNotSelected,
		},
		{
			name:   "extensão não suportada",
			upload: &domain.PendencyUpload{FileName: "notas.pdf", Content: []byte("%PDF")},
			month:  jan2024,
			code:   apiErrors.ErrUnsupportedFile,
			target: ErrUnsupportedFile,
		},
		{
			name:   "planilha só com espaços",
			upload: &domain.PendencyUpload{FileName: "notas.csv", Content: []byte("  \n ")},
			month:  jan2024,
			code:   apiErrors.ErrSchema,
			target: ErrUnreadableFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(nil)

			report, err := svc.Report(context.Background(), tt.upload, tt.month, "")
			assert.Nil(t, report)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
			assertCode(t, err, tt.code)
		})
	}
}

func TestService_Report_SchemaError(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Report(context.Background(), &domain.PendencyUpload{
		FileName: "notas.csv",
		Content:  []byte("Nome,Valor\nAcme,10\n"),
	}, jan2024, "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, loading.ErrSchema))

	var schemaErr *loading.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{loading.ColumnBusinessStage, loading.ColumnReceivedDate}, schemaErr.Missing)
}

func TestService_Report_RecordsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)
	svc := newTestService(repo)

	repo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(entry *domain.ReportHistoryEntry) error {
			assert.Equal(t, "abc123", entry.ID)
			assert.Equal(t, "2024-02", entry.SelectedMonth)
			assert.Equal(t, "notas.csv", entry.SourceFile)
			assert.Equal(t, 2, entry.TotalCompanies)
			assert.Equal(t, []string{"Beta"}, entry.PendingCompanies)
			assert.Equal(t, "ana@empresa.com", entry.CreatedBy)
			assert.Equal(t, generatedAt, entry.CreatedAt)
			return nil
		})

	_, err := svc.Report(context.Background(), upload(), feb2024, "ana@empresa.com")
	require.NoError(t, err)
}

func TestService_Report_HistoryFailureDoesNotFailReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)
	svc := newTestService(repo)

	repo.EXPECT().Save(gomock.Any()).Return(errors.New("conexão recusada"))

	report, err := svc.Report(context.Background(), upload(), feb2024, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, report.CompanyNames())
}

func TestService_Report_IDGenerationFailure(t *testing.T) {
	svc := newTestService(nil)
	svc.generateID = func() (string, error) { return "", errors.New("sem entropia") }

	_, err := svc.Report(context.Background(), upload(), feb2024, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReportIDGenerator))
	assertCode(t, err, apiErrors.ErrInternalServer)
}

func TestService_Export(t *testing.T) {
	svc := newTestService(nil)

	fileName, content, err := svc.Export(context.Background(), upload(), mar2024, "")
	require.NoError(t, err)

	assert.Equal(t, "relatorios_pendencias_2024-03.csv", fileName)

	rows, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Nome", "Mês Pendência"},
		{"Acme", "2024-03"},
		{"Beta", "2024-03"},
	}, rows)
}

func TestService_Export_EmptyResultHasOnlyHeader(t *testing.T) {
	svc := newTestService(nil)

	_, content, err := svc.Export(context.Background(), upload(), jan2024, "")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nome", "Mês Pendência"}}, rows)
}

func TestService_History(t *testing.T) {
	t.Run("desativado", func(t *testing.T) {
		svc := newTestService(nil)

		_, err := svc.History(context.Background(), 10)
		assert.True(t, errors.Is(err, ErrHistoryDisabled))
		assertCode(t, err, apiErrors.ErrFeatureDisabled)

		_, err = svc.HistoryEntry(context.Background(), "abc123")
		assert.True(t, errors.Is(err, ErrHistoryDisabled))
	})

	t.Run("limite padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReportHistoryRepository(ctrl)
		svc := newTestService(repo)

		expected := []*domain.ReportHistoryEntry{{ID: "abc123"}}
		repo.EXPECT().List(defaultHistoryLimit).Return(expected, nil)

		entries, err := svc.History(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, expected, entries)
	})

	t.Run("erro no banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockReportHistoryRepository(ctrl)
		svc := newTestService(repo)

		repo.EXPECT().List(5).Return(nil, errors.New("timeout"))

		_, err := svc.History(context.Background(), 5)
		assert.True(t, errors.Is(err, ErrHistoryOperation))
		assertCode(t, err, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_HistoryEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)
	svc := newTestService(repo)

	entry := &domain.ReportHistoryEntry{ID: "abc123", SelectedMonth: "2024-02"}
	repo.EXPECT().GetByID("abc123").Return(entry, nil)
	repo.EXPECT().GetByID("nope").Return(nil, nil)

	got, err := svc.HistoryEntry(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	_, err = svc.HistoryEntry(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrReportNotFound))
	assertCode(t, err, apiErrors.ErrNotFound)
}
