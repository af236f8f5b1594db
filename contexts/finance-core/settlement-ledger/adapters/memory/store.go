package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backstage/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "backstage/contexts/finance-core/settlement-ledger/domain/errors"
	"backstage/contexts/finance-core/settlement-ledger/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	transactions map[string]entities.ManualTransaction
	payments     map[string]entities.Payment
	campaigns    map[string]struct{}
	audit        []ports.AuditEntry
}

func NewStore(knownCampaigns []string) *Store {
	campaigns := make(map[string]struct{}, len(knownCampaigns))
	for _, id := range knownCampaigns {
		campaigns[strings.TrimSpace(id)] = struct{}{}
	}
	return &Store{
		transactions: make(map[string]entities.ManualTransaction),
		payments:     make(map[string]entities.Payment),
		campaigns:    campaigns,
		audit:        make([]ports.AuditEntry, 0),
	}
}

// RegisterCampaign marks a campaign id as known to the directory.
func (s *Store) RegisterCampaign(campaignID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[strings.TrimSpace(campaignID)] = struct{}{}
}

func (s *Store) CampaignExists(_ context.Context, campaignID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.campaigns[strings.TrimSpace(campaignID)]
	return exists, nil
}

func (s *Store) CreateManualTransaction(
	_ context.Context,
	tx entities.ManualTransaction,
	payments []entities.Payment,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[tx.TransactionID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.transactions[tx.TransactionID] = tx
	for _, payment := range payments {
		s.payments[payment.PaymentID] = payment
	}
	return nil
}

func (s *Store) UpdateManualTransaction(
	_ context.Context,
	tx entities.ManualTransaction,
	payments []entities.Payment,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[tx.TransactionID]; !exists {
		return domainerrors.ErrTransactionNotFound
	}
	s.transactions[tx.TransactionID] = tx
	for _, payment := range payments {
		if _, exists := s.payments[payment.PaymentID]; !exists {
			return domainerrors.ErrPaymentNotFound
		}
		s.payments[payment.PaymentID] = payment
	}
	return nil
}

func (s *Store) DeleteManualTransaction(_ context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactionID = strings.TrimSpace(transactionID)
	if _, exists := s.transactions[transactionID]; !exists {
		return domainerrors.ErrTransactionNotFound
	}
	delete(s.transactions, transactionID)
	// cascade: child payments go with the transaction
	for paymentID, payment := range s.payments {
		if payment.TransactionID == transactionID {
			delete(s.payments, paymentID)
		}
	}
	return nil
}

func (s *Store) GetManualTransaction(_ context.Context, transactionID string) (entities.ManualTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.transactions[strings.TrimSpace(transactionID)]
	if !exists {
		return entities.ManualTransaction{}, domainerrors.ErrTransactionNotFound
	}
	return item, nil
}

func (s *Store) ListManualTransactions(_ context.Context) ([]entities.ManualTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ManualTransaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		items = append(items, tx)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreatePayment(_ context.Context, payment entities.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[payment.PaymentID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.payments[payment.PaymentID] = payment
	return nil
}

func (s *Store) UpdatePayment(_ context.Context, payment entities.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[payment.PaymentID]; !exists {
		return domainerrors.ErrPaymentNotFound
	}
	s.payments[payment.PaymentID] = payment
	return nil
}

func (s *Store) DeletePayment(_ context.Context, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paymentID = strings.TrimSpace(paymentID)
	if _, exists := s.payments[paymentID]; !exists {
		return domainerrors.ErrPaymentNotFound
	}
	delete(s.payments, paymentID)
	return nil
}

func (s *Store) GetPayment(_ context.Context, paymentID string) (entities.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.payments[strings.TrimSpace(paymentID)]
	if !exists {
		return entities.Payment{}, domainerrors.ErrPaymentNotFound
	}
	return item, nil
}

func (s *Store) ListPayments(_ context.Context, filter ports.PaymentFilter) ([]entities.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Payment, 0, len(s.payments))
	for _, payment := range s.payments {
		if strings.TrimSpace(filter.CampaignID) != "" && payment.CampaignID != strings.TrimSpace(filter.CampaignID) {
			continue
		}
		if filter.Status != "" && payment.Status != filter.Status {
			continue
		}
		if filter.Type != "" && payment.Type != filter.Type {
			continue
		}
		items = append(items, payment)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPaymentsByTransaction(_ context.Context, transactionID string) ([]entities.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Payment, 0, 2)
	for _, payment := range s.payments {
		if payment.TransactionID == strings.TrimSpace(transactionID) {
			items = append(items, payment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Type < items[j].Type
	})
	return items, nil
}

func (s *Store) Record(_ context.Context, entry ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// AuditEntries exposes the mirrored audit trail for tests.
func (s *Store) AuditEntries() []ports.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.AuditEntry(nil), s.audit...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
