package config

import (
	"os"
	"strings"
)

func envFlag(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ReconcileOnStartup runs a change-gated reconciliation pass before the admin API starts serving.
//
// Set via env:
// - RECONCILE_ON_STARTUP=false
func ReconcileOnStartup() bool {
	return envFlag("RECONCILE_ON_STARTUP", true)
}

// ReconcileForce bypasses the change-detection gate for startup and CLI passes.
//
// Set via env:
// - RECONCILE_FORCE=true
func ReconcileForce() bool {
	return envFlag("RECONCILE_FORCE", false)
}

// ReconcileDistributedLock serializes passes across processes with a Redis lock.
// Off by default: the engine itself holds no lock and the last writer wins.
//
// Set via env:
// - RECONCILE_DISTRIBUTED_LOCK=true (requires REDIS_ADDRESS)
func ReconcileDistributedLock() bool {
	return envFlag("RECONCILE_DISTRIBUTED_LOCK", false)
}

// AllowNegativeStock lets the sale write path oversell an item.
//
// Set via env:
// - ALLOW_NEGATIVE_STOCK=true
func AllowNegativeStock() bool {
	return envFlag("ALLOW_NEGATIVE_STOCK", false)
}
