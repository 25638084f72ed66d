package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoice-control-api/infrastructure/repository"
	"github.com/vfg2006/invoice-control-api/internal/config"
)

// ReportHistoryCleanupConfig representa a configuração da limpeza do histórico de relatórios
type ReportHistoryCleanupConfig struct {
	CronSchedule    string
	RetentionMonths int
	Enabled         bool
}

// ReportHistoryCleanupService remove do histórico os relatórios fora da janela de retenção
type ReportHistoryCleanupService struct {
	scheduler           *gocron.Scheduler
	config              ReportHistoryCleanupConfig
	historyRepo         repository.ReportHistoryRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDeleted         int64
	lastError           string
}

func NewReportHistoryCleanupService(
	historyRepo repository.ReportHistoryRepository,
	appConfig *config.Config,
) *ReportHistoryCleanupService {
	cleanupConfig := ReportHistoryCleanupConfig{
		CronSchedule:    appConfig.ReportHistory.CleanupCron,
		RetentionMonths: appConfig.ReportHistory.RetentionMonths,
		Enabled:         appConfig.ReportHistory.Enabled && historyRepo != nil,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    cleanupConfig.CronSchedule,
		"retention_months": cleanupConfig.RetentionMonths,
		"enabled":          cleanupConfig.Enabled,
	}).Info("Configuração da limpeza do histórico de relatórios carregada")

	return &ReportHistoryCleanupService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      cleanupConfig,
		historyRepo: historyRepo,
	}
}

// Start inicia o agendador
func (s *ReportHistoryCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza do histórico de relatórios desabilitada por configuração")
		return nil
	}

	if s.config.RetentionMonths <= 0 {
		return fmt.Errorf("REPORT_HISTORY_RETENTION_MONTHS deve ser maior que zero, recebido %d", s.config.RetentionMonths)
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza do histórico de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.cleanupHistory()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do histórico de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza do histórico de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// cleanupHistory apaga os relatórios mais antigos que a retenção configurada
func (s *ReportHistoryCleanupService) cleanupHistory() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza do histórico já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	deleted, err := s.historyRepo.DeleteOlderThan(s.config.RetentionMonths)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao limpar histórico de relatórios")
		return
	}

	s.lastError = ""
	s.lastDeleted = deleted
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"deleted":          deleted,
		"retention_months": s.config.RetentionMonths,
		"duration":         time.Since(startTime).String(),
	}).Info("Limpeza do histórico de relatórios concluída")
}

// TriggerManualSync dispara a limpeza fora do agendamento
func (s *ReportHistoryCleanupService) TriggerManualSync() error {
	if s.historyRepo == nil || !s.config.Enabled {
		return fmt.Errorf("limpeza do histórico de relatórios desabilitada")
	}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza do histórico já em andamento, ignorando solicitação manual")
		return nil
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual do histórico de relatórios")
	go s.cleanupHistory()

	return nil
}

// GetStatus retorna o status atual do agendador
func (s *ReportHistoryCleanupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_policy":       fmt.Sprintf("relatórios mantidos por %d meses", s.config.RetentionMonths),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_deleted":           s.lastDeleted,
		"last_error":             s.lastError,
	}
}
