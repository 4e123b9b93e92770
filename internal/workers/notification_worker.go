package workers

import (
	"context"
	"time"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/metrics"
	"collabhub_backend/internal/services"
)

// NotificationWorker удаляет старые прочитанные уведомления.
type NotificationWorker struct {
	notificationService services.NotificationService
	interval            time.Duration
	retention           time.Duration
	metrics             *metrics.Metrics
}

func NewNotificationWorker(notificationService services.NotificationService, interval, retention time.Duration, m *metrics.Metrics) *NotificationWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &NotificationWorker{
		notificationService: notificationService,
		interval:            interval,
		retention:           retention,
		metrics:             m,
	}
}

// Run блокируется до отмены контекста. Запускать в отдельной горутине.
func (w *NotificationWorker) Run(ctx context.Context) {
	logger.Info("Notification cleanup worker started", "interval", w.interval.String(), "retention", w.retention.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification cleanup worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *NotificationWorker) tick(ctx context.Context) {
	removed, err := w.notificationService.CleanOldNotifications(ctx, w.retention)
	if err != nil {
		logger.CtxError(ctx, "Failed to clean old notifications", "error", err)
		if w.metrics != nil {
			w.metrics.WorkerRuns.WithLabelValues("notification_cleanup", "error").Inc()
		}
		return
	}
	if removed > 0 {
		logger.CtxInfo(ctx, "Old notifications removed", "count", removed)
	}
	if w.metrics != nil {
		w.metrics.WorkerRuns.WithLabelValues("notification_cleanup", "ok").Inc()
	}
}
