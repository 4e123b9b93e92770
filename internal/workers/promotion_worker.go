package workers

import (
	"context"
	"time"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/metrics"
	"collabhub_backend/internal/services"
)

// PromotionWorker периодически закрывает кампании с истекшим дедлайном.
type PromotionWorker struct {
	promotionService services.PromotionService
	interval         time.Duration
	metrics          *metrics.Metrics
}

func NewPromotionWorker(promotionService services.PromotionService, interval time.Duration, m *metrics.Metrics) *PromotionWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &PromotionWorker{
		promotionService: promotionService,
		interval:         interval,
		metrics:          m,
	}
}

// Run блокируется до отмены контекста. Запускать в отдельной горутине.
func (w *PromotionWorker) Run(ctx context.Context) {
	logger.Info("Promotion worker started", "interval", w.interval.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Promotion worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *PromotionWorker) tick(ctx context.Context) {
	closed, err := w.promotionService.CloseExpiredPromotions(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to close expired promotions", "error", err)
		if w.metrics != nil {
			w.metrics.WorkerRuns.WithLabelValues("promotion", "error").Inc()
		}
		return
	}
	if closed > 0 {
		logger.CtxInfo(ctx, "Expired promotions closed", "count", closed)
	}
	if w.metrics != nil {
		w.metrics.WorkerRuns.WithLabelValues("promotion", "ok").Inc()
	}
}
