package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/handlers"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/mmdatafocus/billing_ledger/workflow"
	"github.com/sirupsen/logrus"
)

// runStartupReconcile never stops the server: a failed pass is logged and the next
// trigger retries it.
func runStartupReconcile(ctx context.Context, ledger *workflow.Ledger, logger *logrus.Logger) {
	if !config.ReconcileOnStartup() {
		logger.WithFields(logrus.Fields{"field": "reconcile"}).Info("RECONCILE_ON_STARTUP=false; skipping startup pass")
		return
	}
	var err error
	if config.ReconcileForce() {
		_, err = ledger.Reconcile(ctx)
	} else {
		_, err = ledger.ReconcileIfNeeded(ctx)
	}
	if err != nil {
		config.LogError(logger, "server.go", "runStartupReconcile", "Reconcile", nil, err)
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func main() {
	cfg := config.LoadLedgerConfig()
	logger := config.GetLogger()

	// Shutdown coordination.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	ledger, err := workflow.OpenLedger(sigCtx, cfg, logger)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "storage"}).Fatal("open ledger: " + err.Error())
	}

	runStartupReconcile(sigCtx, ledger, logger)

	r := gin.New()
	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), cid)
		if user := c.GetHeader("x-operator"); user != "" {
			ctx = utils.SetUsernameInContext(ctx, user)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	handlers.RegisterRoutes(r, ledger, logger)
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"info":    "Connection Established",
		"backend": cfg.Backend,
	}).Info("admin API listening on :", cfg.HTTPPort)
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
