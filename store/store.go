package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/sirupsen/logrus"
)

// Store is the typed view over a Backend used by the reconciliation pass and the write path.
type Store struct {
	backend Backend
	logger  *logrus.Logger
}

func NewStore(backend Backend, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &Store{backend: backend, logger: logger}
}

func (s *Store) load(ctx context.Context, c Collection) ([]byte, bool, error) {
	data, exists, err := s.backend.Load(ctx, c)
	if err != nil {
		return nil, exists, fmt.Errorf("load %s: %w", c, err)
	}
	return data, exists, nil
}

// LoadRecords reads a purchase or sales collection. A missing collection, or one whose
// top level is not a list, loads as empty. Undecodable JSON is an error: reconciling
// against a collection we cannot read would rebuild inventory from nothing.
func (s *Store) LoadRecords(ctx context.Context, c Collection) ([]models.Document, error) {
	data, exists, err := s.load(ctx, c)
	if err != nil || !exists {
		return []models.Document{}, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	list, ok := raw.([]any)
	if !ok {
		if raw != nil {
			s.logger.WithField("collection", c).Warn("ledger.store.unexpected_shape")
		}
		return []models.Document{}, nil
	}
	records := make([]models.Document, 0, len(list))
	for i, elm := range list {
		m, ok := elm.(map[string]any)
		if !ok {
			s.logger.WithFields(logrus.Fields{
				"collection": c,
				"index":      i,
			}).Warn("ledger.store.skip_non_object_record")
			continue
		}
		records = append(records, models.Document(m))
	}
	return records, nil
}

func (s *Store) SaveRecords(ctx context.Context, c Collection, records []models.Document) error {
	if records == nil {
		records = []models.Document{}
	}
	return s.save(ctx, c, records)
}

func (s *Store) LoadPurchases(ctx context.Context) ([]models.Document, error) {
	return s.LoadRecords(ctx, CollectionPurchase)
}

func (s *Store) SavePurchases(ctx context.Context, records []models.Document) error {
	return s.SaveRecords(ctx, CollectionPurchase, records)
}

func (s *Store) LoadSales(ctx context.Context) ([]models.Document, error) {
	return s.LoadRecords(ctx, CollectionSales)
}

func (s *Store) SaveSales(ctx context.Context, records []models.Document) error {
	return s.SaveRecords(ctx, CollectionSales, records)
}

// LoadInventoryDocument returns the snapshot as stored; a non-object snapshot loads as empty.
func (s *Store) LoadInventoryDocument(ctx context.Context) (models.Document, error) {
	data, exists, err := s.load(ctx, CollectionInventory)
	if err != nil || !exists {
		return models.Document{}, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", CollectionInventory, err)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		if raw != nil {
			s.logger.WithField("collection", CollectionInventory).Warn("ledger.store.unexpected_shape")
		}
		return models.Document{}, nil
	}
	return models.Document(m), nil
}

func (s *Store) LoadInventory(ctx context.Context) (models.Inventory, error) {
	doc, err := s.LoadInventoryDocument(ctx)
	if err != nil {
		return nil, err
	}
	return models.InventoryFromDocument(doc), nil
}

func (s *Store) SaveInventory(ctx context.Context, inv models.Inventory) error {
	if inv == nil {
		inv = models.Inventory{}
	}
	return s.save(ctx, CollectionInventory, inv)
}

// LoadState returns nil when no usable state has been recorded yet.
func (s *Store) LoadState(ctx context.Context) (*models.ReconcileState, error) {
	data, exists, err := s.load(ctx, CollectionState)
	if err != nil || !exists {
		return nil, err
	}
	var state models.ReconcileState
	if err := utils.UnmarshalFromJSON(data, &state); err != nil {
		s.logger.WithField("collection", CollectionState).Warn("ledger.store.state_unreadable")
		return nil, nil
	}
	return &state, nil
}

func (s *Store) SaveState(ctx context.Context, state models.ReconcileState) error {
	return s.save(ctx, CollectionState, state)
}

func (s *Store) Signatures(ctx context.Context) (models.CollectionSignatures, error) {
	var sigs models.CollectionSignatures
	var err error
	if sigs.Purchase, err = s.backend.Stat(ctx, CollectionPurchase); err != nil {
		return sigs, fmt.Errorf("stat %s: %w", CollectionPurchase, err)
	}
	if sigs.Sales, err = s.backend.Stat(ctx, CollectionSales); err != nil {
		return sigs, fmt.Errorf("stat %s: %w", CollectionSales, err)
	}
	if sigs.Inventory, err = s.backend.Stat(ctx, CollectionInventory); err != nil {
		return sigs, fmt.Errorf("stat %s: %w", CollectionInventory, err)
	}
	return sigs, nil
}

// AppendAudit stores entry at the head of the audit log.
func (s *Store) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	logs, err := s.LoadRecords(ctx, CollectionAudit)
	if err != nil {
		// A corrupt audit log must not block the write that is being audited.
		s.logger.WithError(err).Warn("ledger.store.audit_reset")
		logs = []models.Document{}
	}
	doc, err := models.ToDocument(entry)
	if err != nil {
		return err
	}
	logs = append([]models.Document{doc}, logs...)
	return s.SaveRecords(ctx, CollectionAudit, logs)
}

func (s *Store) LoadAudit(ctx context.Context) ([]models.Document, error) {
	return s.LoadRecords(ctx, CollectionAudit)
}

func (s *Store) save(ctx context.Context, c Collection, v any) error {
	data, err := utils.MarshalIndentJSON(v)
	if err != nil {
		return &PersistError{Collection: c, Err: err}
	}
	started := time.Now()
	if err := s.backend.Save(ctx, c, data); err != nil {
		return &PersistError{Collection: c, Err: err}
	}
	s.logger.WithFields(logrus.Fields{
		"collection": c,
		"bytes":      len(data),
		"elapsed_ms": time.Since(started).Milliseconds(),
	}).Debug("ledger.store.saved")
	return nil
}
