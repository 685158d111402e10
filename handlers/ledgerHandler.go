package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/mmdatafocus/billing_ledger/workflow"
	"github.com/sirupsen/logrus"
)

// Ledger is the part of workflow.Ledger the admin API serves.
type Ledger interface {
	Reconcile(ctx context.Context) (models.ReconcileResult, error)
	ReconcileIfNeeded(ctx context.Context) (models.ReconcileResult, error)
	Purchases(ctx context.Context) ([]models.Purchase, error)
	Sales(ctx context.Context) ([]models.Sale, error)
	Inventory(ctx context.Context) (models.Inventory, error)
	CreatePurchase(ctx context.Context, input models.NewPurchase) (models.Purchase, error)
	CreateSale(ctx context.Context, input models.NewSale) (models.Sale, error)
	CancelSale(ctx context.Context, invoiceNo string, reason string, user string) error
	ReceiveSalePayment(ctx context.Context, invoiceNo string, amount float64, mode string, user string) (models.Sale, error)
}

type cancelSaleRequest struct {
	Reason string `json:"reason"`
	User   string `json:"user"`
}

type salePaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"payment_mode"`
	User        string  `json:"user"`
}

// RegisterRoutes mounts the admin API on r.
func RegisterRoutes(r gin.IRouter, ledger Ledger, logger *logrus.Logger) {
	admin := r.Group("/admin")
	admin.POST("/reconcile", reconcileHandler(ledger, logger, false))
	admin.POST("/reconcile-if-needed", reconcileHandler(ledger, logger, true))
	admin.GET("/purchases", listPurchasesHandler(ledger, logger))
	admin.POST("/purchases", createPurchaseHandler(ledger, logger))
	admin.GET("/sales", listSalesHandler(ledger, logger))
	admin.POST("/sales", createSaleHandler(ledger, logger))
	admin.POST("/sales/:invoiceNo/cancel", cancelSaleHandler(ledger, logger))
	admin.POST("/sales/:invoiceNo/payments", salePaymentHandler(ledger, logger))
	admin.GET("/inventory", inventoryHandler(ledger, logger))
}

func reconcileHandler(ledger Ledger, logger *logrus.Logger, ifNeeded bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			result models.ReconcileResult
			err    error
		)
		if ifNeeded {
			result, err = ledger.ReconcileIfNeeded(c.Request.Context())
		} else {
			result, err = ledger.Reconcile(c.Request.Context())
		}
		if err != nil {
			config.LogError(logger, "ledgerHandler.go", "reconcileHandler", "Reconcile", result, err)
			status := statusFor(err)
			// A pass that failed to persist still reports what it saw.
			if len(result.FailedCollections) > 0 {
				c.JSON(status, gin.H{"error": err.Error(), "result": result})
				return
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func listPurchasesHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		purchases, err := ledger.Purchases(c.Request.Context())
		if err != nil {
			respondError(c, logger, "listPurchasesHandler", err)
			return
		}
		c.JSON(http.StatusOK, purchases)
	}
}

func listSalesHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := ledger.Sales(c.Request.Context())
		if err != nil {
			respondError(c, logger, "listSalesHandler", err)
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

func inventoryHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := ledger.Inventory(c.Request.Context())
		if err != nil {
			respondError(c, logger, "inventoryHandler", err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

func createPurchaseHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPurchase
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		purchase, err := ledger.CreatePurchase(c.Request.Context(), input)
		if err != nil {
			respondError(c, logger, "createPurchaseHandler", err)
			return
		}
		c.JSON(http.StatusCreated, purchase)
	}
}

func createSaleHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSale
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sale, err := ledger.CreateSale(c.Request.Context(), input)
		if err != nil {
			respondError(c, logger, "createSaleHandler", err)
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

func cancelSaleHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cancelSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		invoiceNo := c.Param("invoiceNo")
		if err := ledger.CancelSale(c.Request.Context(), invoiceNo, req.Reason, req.User); err != nil {
			respondError(c, logger, "cancelSaleHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"invoice_no": invoiceNo, "cancelled": true})
	}
}

func salePaymentHandler(ledger Ledger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req salePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sale, err := ledger.ReceiveSalePayment(c.Request.Context(), c.Param("invoiceNo"), req.Amount, req.PaymentMode, req.User)
		if err != nil {
			respondError(c, logger, "salePaymentHandler", err)
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

func respondError(c *gin.Context, logger *logrus.Logger, funcName string, err error) {
	if fields := utils.ProcessValidationErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		config.LogError(logger, "ledgerHandler.go", funcName, c.FullPath(), c.Param("invoiceNo"), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrPassInProgress),
		errors.Is(err, utils.ErrorInvoiceCancelled):
		return http.StatusConflict
	case errors.Is(err, utils.ErrorInsufficientStock),
		errors.Is(err, utils.ErrorPaymentExceedsDue),
		errors.Is(err, utils.ErrorNothingDue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrorInvalidPayAmount),
		errors.Is(err, utils.ErrorInvalidItemName),
		errors.Is(err, utils.ErrorInvalidPhone):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
