package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/repository"
	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// HistoryRetentionService remove periodicamente snapshots legados antigos do histórico.
// Snapshots por campanha nunca são removidos.
type HistoryRetentionService struct {
	scheduler            *gocron.Scheduler
	config               config.HistoryRetention
	historyRepo          repository.RunHistoryRepository
	now                  func() time.Time
	cleanupRunning       bool
	cleanupMutex         sync.Mutex
	lastCleanupStartedAt time.Time
	lastCleanupRemoved   int64
}

func NewHistoryRetentionService(
	historyRepo repository.RunHistoryRepository,
	appConfig *config.Config,
) *HistoryRetentionService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":  appConfig.HistoryRetention.CronSchedule,
		"retention_days": appConfig.HistoryRetention.RetentionDays,
		"enabled":        appConfig.HistoryRetention.Enabled,
	}).Info("Configuração da limpeza de histórico carregada")

	return &HistoryRetentionService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      appConfig.HistoryRetention,
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

// Start agenda a limpeza e para o agendador quando o contexto é cancelado
func (s *HistoryRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de histórico desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de histórico")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.cleanupLegacySnapshots()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de histórico: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de histórico")
		s.scheduler.Stop()
	}()

	return nil
}

// cleanupLegacySnapshots remove snapshots legados mais antigos que a retenção
// configurada e retorna quantos foram removidos
func (s *HistoryRetentionService) cleanupLegacySnapshots() int64 {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de histórico já em andamento, ignorando")
		return 0
	}
	s.cleanupRunning = true
	s.lastCleanupStartedAt = s.now()
	s.cleanupMutex.Unlock()

	defer func() {
		s.cleanupMutex.Lock()
		s.cleanupRunning = false
		s.cleanupMutex.Unlock()
	}()

	before := s.now().AddDate(0, 0, -s.config.RetentionDays)

	removed, err := s.historyRepo.DeleteLegacyOlderThan(before)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover snapshots legados do histórico")
		return 0
	}

	s.cleanupMutex.Lock()
	s.lastCleanupRemoved = removed
	s.cleanupMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"removed": removed,
		"before":  before.Format(time.DateOnly),
	}).Info("Limpeza de histórico concluída")

	return removed
}

// TriggerManualCleanup dispara a limpeza fora do agendamento
func (s *HistoryRetentionService) TriggerManualCleanup() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de histórico já em andamento, ignorando solicitação manual")
		return
	}
	s.cleanupMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de histórico")
	go s.cleanupLegacySnapshots()
}

// GetStatus retorna o status atual do agendador
func (s *HistoryRetentionService) GetStatus() map[string]any {
	s.cleanupMutex.Lock()
	defer s.cleanupMutex.Unlock()

	return map[string]any{
		"cleanup_enabled":         s.config.Enabled,
		"cleanup_cron":            s.config.CronSchedule,
		"retention_days":          s.config.RetentionDays,
		"cleanup_running":         s.cleanupRunning,
		"last_cleanup_started_at": s.lastCleanupStartedAt,
		"last_cleanup_removed":    s.lastCleanupRemoved,
	}
}
