package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
	"github.com/blazern/recipe-calculator-server-sub000/internal/service"
)

// PairingExpiryWorkerConfig holds configuration for the pairing-request
// expiry sweep.
type PairingExpiryWorkerConfig struct {
	Interval  time.Duration
	BatchSize int
}

func DefaultPairingExpiryWorkerConfig() PairingExpiryWorkerConfig {
	return PairingExpiryWorkerConfig{
		Interval:  30 * time.Second,
		BatchSize: 100,
	}
}

// PairingExpiryWorker periodically expires pairing requests whose deadline
// has passed without the target device confirming.
type PairingExpiryWorker struct {
	service *service.PairingService
	config  PairingExpiryWorkerConfig
	logger  *logger.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewPairingExpiryWorker(svc *service.PairingService, config PairingExpiryWorkerConfig, log *logger.Logger) *PairingExpiryWorker {
	return &PairingExpiryWorker{
		service: svc,
		config:  config,
		logger:  log,
		stopCh:  make(chan struct{}),
	}
}

func (w *PairingExpiryWorker) Name() string {
	return "PairingExpiryWorker"
}

func (w *PairingExpiryWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	defer w.wg.Done()

	w.logger.Info("pairing expiry worker started",
		zap.Duration("interval", w.config.Interval),
		zap.Int("batch_size", w.config.BatchSize))

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.process(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("pairing expiry worker stopping due to context cancellation")
			return
		case <-w.stopCh:
			w.logger.Info("pairing expiry worker stopping due to stop signal")
			return
		case <-ticker.C:
			w.process(ctx)
		}
	}
}

func (w *PairingExpiryWorker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.logger.Info("pairing expiry worker stopped")
}

func (w *PairingExpiryWorker) process(ctx context.Context) {
	start := time.Now()

	count, err := w.service.ExpirePending(ctx, w.config.BatchSize)
	if err != nil {
		w.logger.Error("failed to expire pairing requests",
			zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}

	if count > 0 {
		w.logger.Info("pairing expiry worker cycle completed",
			zap.Int("expired", count), zap.Duration("duration", time.Since(start)))
	} else {
		w.logger.Debug("pairing expiry worker cycle completed - nothing expired")
	}
}
