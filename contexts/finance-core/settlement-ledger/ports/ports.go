package ports

import (
	"context"
	"time"

	"backstage/contexts/finance-core/settlement-ledger/domain/entities"
)

type PaymentFilter struct {
	CampaignID string
	Status     entities.PaymentStatus
	Type       entities.PaymentType
}

// TransactionRepository persists a manual transaction together with its two
// child payments. Create/Update/Delete span every row atomically: either the
// transaction and both payments are written, or nothing is.
type TransactionRepository interface {
	CreateManualTransaction(ctx context.Context, tx entities.ManualTransaction, payments []entities.Payment) error
	UpdateManualTransaction(ctx context.Context, tx entities.ManualTransaction, payments []entities.Payment) error
	DeleteManualTransaction(ctx context.Context, transactionID string) error
	GetManualTransaction(ctx context.Context, transactionID string) (entities.ManualTransaction, error)
	ListManualTransactions(ctx context.Context) ([]entities.ManualTransaction, error)
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment entities.Payment) error
	UpdatePayment(ctx context.Context, payment entities.Payment) error
	DeletePayment(ctx context.Context, paymentID string) error
	GetPayment(ctx context.Context, paymentID string) (entities.Payment, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]entities.Payment, error)
	ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]entities.Payment, error)
}

// CampaignDirectory answers whether a campaign exists; standalone payments
// must reference a real campaign.
type CampaignDirectory interface {
	CampaignExists(ctx context.Context, campaignID string) (bool, error)
}

type AuditEntry struct {
	ActorID       string
	Action        string
	EntityType    string
	EntityID      string
	EntityName    string
	OldValue      []byte
	NewValue      []byte
	OriginAddress string
	OriginAgent   string
}

// AuditRecorder mirrors ledger mutations into the activity log. Recording is
// best effort: a failed write never rolls back the ledger mutation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
