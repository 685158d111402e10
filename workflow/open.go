package workflow

import (
	"context"
	"time"

	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/store"
	"github.com/sirupsen/logrus"
)

const passLockTTL = 5 * time.Minute

// OpenLedger wires a Ledger from environment configuration: the selected storage backend,
// the feature flags and, when enabled, the Redis pass guard.
func OpenLedger(ctx context.Context, cfg config.LedgerConfig, logger *logrus.Logger) (*Ledger, error) {
	if logger == nil {
		logger = config.GetLogger()
	}
	backend, err := store.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithLogger(logger),
		WithAllowNegativeStock(config.AllowNegativeStock()),
		WithPhoneCountryCode(cfg.PhoneCountryCode),
	}
	if config.ReconcileDistributedLock() {
		if _, err := config.ConnectRedisWithRetry(ctx, cfg.RedisAddress); err != nil {
			return nil, err
		}
		opts = append(opts, WithPassGuard(NewRedisPassGuard(config.GetRedisLock(), cfg.RedisPrefix, passLockTTL)))
	}
	logger.WithFields(logrus.Fields{
		"backend":          cfg.Backend,
		"distributed_lock": config.ReconcileDistributedLock(),
	}).Info("ledger.opened")
	return NewLedger(store.NewStore(backend, logger), opts...), nil
}
