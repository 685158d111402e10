package workflow

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/store"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("billing-ledger")

// Ledger owns the reconciliation pass and the write path over one Store.
type Ledger struct {
	store              *store.Store
	logger             *logrus.Logger
	guard              PassGuard
	validate           *validator.Validate
	now                func() time.Time
	allowNegativeStock bool
	phoneCountryCode   string
}

type Option func(*Ledger)

func WithLogger(logger *logrus.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPassGuard serializes passes; without it passes run unguarded.
func WithPassGuard(guard PassGuard) Option {
	return func(l *Ledger) {
		if guard != nil {
			l.guard = guard
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

func WithAllowNegativeStock(allow bool) Option {
	return func(l *Ledger) {
		l.allowNegativeStock = allow
	}
}

func WithPhoneCountryCode(code string) Option {
	return func(l *Ledger) {
		if code != "" {
			l.phoneCountryCode = code
		}
	}
}

func NewLedger(st *store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:            st,
		logger:           config.GetLogger(),
		guard:            noopPassGuard{},
		validate:         validator.New(),
		now:              time.Now,
		phoneCountryCode: utils.CountryCode,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Store() *store.Store {
	return l.store
}

// Purchases returns the typed view of every purchase. Records that cannot be decoded are
// logged and left out.
func (l *Ledger) Purchases(ctx context.Context) ([]models.Purchase, error) {
	docs, err := l.store.LoadPurchases(ctx)
	if err != nil {
		return nil, err
	}
	purchases := make([]models.Purchase, 0, len(docs))
	for _, doc := range docs {
		p, err := models.DecodePurchase(doc)
		if err != nil {
			config.LogError(l.logger, "ledger.go", "Purchases", "DecodePurchase", doc["purchase_id"], err)
			continue
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (l *Ledger) Sales(ctx context.Context) ([]models.Sale, error) {
	docs, err := l.store.LoadSales(ctx)
	if err != nil {
		return nil, err
	}
	sales := make([]models.Sale, 0, len(docs))
	for _, doc := range docs {
		s, err := models.DecodeSale(doc)
		if err != nil {
			config.LogError(l.logger, "ledger.go", "Sales", "DecodeSale", doc["invoice_no"], err)
			continue
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func (l *Ledger) Inventory(ctx context.Context) (models.Inventory, error) {
	doc, err := l.store.LoadInventoryDocument(ctx)
	if err != nil {
		return nil, err
	}
	return models.DecodeInventory(doc), nil
}
