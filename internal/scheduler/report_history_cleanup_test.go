package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/invoice-control-api/infrastructure/repository/mocks"
	"github.com/vfg2006/invoice-control-api/internal/config"
	"go.uber.org/mock/gomock"
)

func historyConfig(enabled bool, cron string) *config.Config {
	return &config.Config{
		ReportHistory: config.ReportHistory{
			Enabled:         enabled,
			RetentionMonths: 12,
			CleanupCron:     cron,
		},
	}
}

func TestReportHistoryCleanup_Disabled(t *testing.T) {
	svc := NewReportHistoryCleanupService(nil, historyConfig(true, "0 3 1 * *"))

	assert.NoError(t, svc.Start(context.Background()))
	assert.Error(t, svc.TriggerManualSync())
	assert.Equal(t, false, svc.GetStatus()["sync_enabled"])
}

func TestReportHistoryCleanup_InvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)

	svc := NewReportHistoryCleanupService(repo, historyConfig(true, "não é cron"))

	err := svc.Start(context.Background())
	assert.Error(t, err)
}

func TestReportHistoryCleanup_DeletesOlderEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)

	repo.EXPECT().DeleteOlderThan(12).Return(int64(3), nil)

	svc := NewReportHistoryCleanupService(repo, historyConfig(true, "0 3 1 * *"))
	svc.cleanupHistory()

	status := svc.GetStatus()
	assert.Equal(t, int64(3), status["last_deleted"])
	assert.Equal(t, "", status["last_error"])
	assert.Equal(t, false, status["sync_running"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestReportHistoryCleanup_RecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)

	repo.EXPECT().DeleteOlderThan(12).Return(int64(0), errors.New("conexão perdida"))

	svc := NewReportHistoryCleanupService(repo, historyConfig(true, "0 3 1 * *"))
	svc.cleanupHistory()

	status := svc.GetStatus()
	assert.Equal(t, "conexão perdida", status["last_error"])
	assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestReportHistoryCleanup_ManualTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportHistoryRepository(ctrl)

	done := make(chan struct{})
	repo.EXPECT().DeleteOlderThan(12).DoAndReturn(func(int) (int64, error) {
		defer close(done)
		return 1, nil
	})

	svc := NewReportHistoryCleanupService(repo, historyConfig(true, "0 3 1 * *"))
	require.NoError(t, svc.TriggerManualSync())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("limpeza manual não executada")
	}

	assert.Eventually(t, func() bool {
		return svc.GetStatus()["last_deleted"] == int64(1)
	}, 2*time.Second, 10*time.Millisecond)
}
