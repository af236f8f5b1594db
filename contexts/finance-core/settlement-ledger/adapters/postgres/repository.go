package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"backstage/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "backstage/contexts/finance-core/settlement-ledger/domain/errors"
	"backstage/contexts/finance-core/settlement-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&manualTransactionModel{}, &paymentModel{})
}

func (r *Repository) CreateManualTransaction(
	ctx context.Context,
	tx entities.ManualTransaction,
	payments []entities.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		row := transactionModelFromEntity(tx)
		if err := dbtx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidInput
			}
			return err
		}
		for _, payment := range payments {
			paymentRow := paymentModelFromEntity(payment)
			if err := dbtx.Create(&paymentRow).Error; err != nil {
				if isUniqueViolation(err) {
					return domainerrors.ErrInvalidInput
				}
				return err
			}
		}
		return nil
	})
}

func (r *Repository) UpdateManualTransaction(
	ctx context.Context,
	tx entities.ManualTransaction,
	payments []entities.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		result := dbtx.Model(&manualTransactionModel{}).
			Where("transaction_id = ?", strings.TrimSpace(tx.TransactionID)).
			Updates(map[string]any{
				"influencer_id":   strings.TrimSpace(tx.InfluencerID),
				"influencer_name": strings.TrimSpace(tx.InfluencerName),
				"brand_id":        strings.TrimSpace(tx.BrandID),
				"brand_name":      strings.TrimSpace(tx.BrandName),
				"total_amount":    tx.TotalAmount,
				"payout_amount":   tx.PayoutAmount,
				"profit":          tx.Profit,
				"margin":          tx.Margin,
				"notes":           strings.TrimSpace(tx.Notes),
				"updated_at":      tx.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrTransactionNotFound
		}
		for _, payment := range payments {
			paymentResult := dbtx.Model(&paymentModel{}).
				Where("payment_id = ?", strings.TrimSpace(payment.PaymentID)).
				Updates(map[string]any{
					"amount":        payment.Amount,
					"advance":       payment.Advance,
					"balance":       payment.Balance,
					"status":        string(payment.Status),
					"influencer_id": strings.TrimSpace(payment.InfluencerID),
					"notes":         strings.TrimSpace(payment.Notes),
					"updated_at":    payment.UpdatedAt.UTC(),
				})
			if paymentResult.Error != nil {
				return paymentResult.Error
			}
			if paymentResult.RowsAffected == 0 {
				return domainerrors.ErrPaymentNotFound
			}
		}
		return nil
	})
}

func (r *Repository) DeleteManualTransaction(ctx context.Context, transactionID string) error {
	transactionID = strings.TrimSpace(transactionID)
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.
			Where("transaction_id = ?", transactionID).
			Delete(&paymentModel{}).
			Error; err != nil {
			return err
		}
		result := dbtx.
			Where("transaction_id = ?", transactionID).
			Delete(&manualTransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrTransactionNotFound
		}
		return nil
	})
}

func (r *Repository) GetManualTransaction(ctx context.Context, transactionID string) (entities.ManualTransaction, error) {
	var row manualTransactionModel
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", strings.TrimSpace(transactionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ManualTransaction{}, domainerrors.ErrTransactionNotFound
		}
		return entities.ManualTransaction{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListManualTransactions(ctx context.Context) ([]entities.ManualTransaction, error) {
	var rows []manualTransactionModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.ManualTransaction, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreatePayment(ctx context.Context, payment entities.Payment) error {
	row := paymentModelFromEntity(payment)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdatePayment(ctx context.Context, payment entities.Payment) error {
	result := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("payment_id = ?", strings.TrimSpace(payment.PaymentID)).
		Updates(map[string]any{
			"amount":     payment.Amount,
			"advance":    payment.Advance,
			"balance":    payment.Balance,
			"status":     string(payment.Status),
			"due_date":   payment.DueDate,
			"paid_date":  payment.PaidDate,
			"notes":      strings.TrimSpace(payment.Notes),
			"updated_at": payment.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound
	}
	return nil
}

func (r *Repository) DeletePayment(ctx context.Context, paymentID string) error {
	result := r.db.WithContext(ctx).
		Where("payment_id = ?", strings.TrimSpace(paymentID)).
		Delete(&paymentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound
	}
	return nil
}

func (r *Repository) GetPayment(ctx context.Context, paymentID string) (entities.Payment, error) {
	var row paymentModel
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", strings.TrimSpace(paymentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Payment{}, domainerrors.ErrPaymentNotFound
		}
		return entities.Payment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPayments(ctx context.Context, filter ports.PaymentFilter) ([]entities.Payment, error) {
	tx := r.db.WithContext(ctx).Model(&paymentModel{})
	if strings.TrimSpace(filter.CampaignID) != "" {
		tx = tx.Where("campaign_id = ?", strings.TrimSpace(filter.CampaignID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", string(filter.Type))
	}

	var rows []paymentModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]entities.Payment, error) {
	var rows []paymentModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", strings.TrimSpace(transactionID)).
		Order("type ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// CampaignExists reads the campaign table owned by the engagement service.
// The ledger only needs existence, not the row.
func (r *Repository) CampaignExists(ctx context.Context, campaignID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("campaigns").
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type manualTransactionModel struct {
	TransactionID  string    `gorm:"column:transaction_id;primaryKey"`
	InfluencerID   string    `gorm:"column:influencer_id"`
	InfluencerName string    `gorm:"column:influencer_name"`
	BrandID        string    `gorm:"column:brand_id"`
	BrandName      string    `gorm:"column:brand_name"`
	TotalAmount    float64   `gorm:"column:total_amount"`
	PayoutAmount   float64   `gorm:"column:payout_amount"`
	Profit         float64   `gorm:"column:profit"`
	Margin         float64   `gorm:"column:margin"`
	Notes          string    `gorm:"column:notes"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (manualTransactionModel) TableName() string {
	return "manual_transactions"
}

func transactionModelFromEntity(item entities.ManualTransaction) manualTransactionModel {
	return manualTransactionModel{
		TransactionID:  strings.TrimSpace(item.TransactionID),
		InfluencerID:   strings.TrimSpace(item.InfluencerID),
		InfluencerName: strings.TrimSpace(item.InfluencerName),
		BrandID:        strings.TrimSpace(item.BrandID),
		BrandName:      strings.TrimSpace(item.BrandName),
		TotalAmount:    item.TotalAmount,
		PayoutAmount:   item.PayoutAmount,
		Profit:         item.Profit,
		Margin:         item.Margin,
		Notes:          strings.TrimSpace(item.Notes),
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m manualTransactionModel) toEntity() entities.ManualTransaction {
	return entities.ManualTransaction{
		TransactionID:  m.TransactionID,
		InfluencerID:   m.InfluencerID,
		InfluencerName: m.InfluencerName,
		BrandID:        m.BrandID,
		BrandName:      m.BrandName,
		TotalAmount:    m.TotalAmount,
		PayoutAmount:   m.PayoutAmount,
		Profit:         m.Profit,
		Margin:         m.Margin,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type paymentModel struct {
	PaymentID     string     `gorm:"column:payment_id;primaryKey"`
	CampaignID    string     `gorm:"column:campaign_id"`
	TransactionID string     `gorm:"column:transaction_id"`
	Type          string     `gorm:"column:type"`
	Amount        float64    `gorm:"column:amount"`
	Advance       float64    `gorm:"column:advance"`
	Balance       float64    `gorm:"column:balance"`
	Status        string     `gorm:"column:status"`
	DueDate       *time.Time `gorm:"column:due_date"`
	PaidDate      *time.Time `gorm:"column:paid_date"`
	InfluencerID  string     `gorm:"column:influencer_id"`
	Notes         string     `gorm:"column:notes"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string {
	return "payments"
}

func paymentModelFromEntity(item entities.Payment) paymentModel {
	return paymentModel{
		PaymentID:     strings.TrimSpace(item.PaymentID),
		CampaignID:    strings.TrimSpace(item.CampaignID),
		TransactionID: strings.TrimSpace(item.TransactionID),
		Type:          string(item.Type),
		Amount:        item.Amount,
		Advance:       item.Advance,
		Balance:       item.Balance,
		Status:        string(item.Status),
		DueDate:       item.DueDate,
		PaidDate:      item.PaidDate,
		InfluencerID:  strings.TrimSpace(item.InfluencerID),
		Notes:         strings.TrimSpace(item.Notes),
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func (m paymentModel) toEntity() entities.Payment {
	return entities.Payment{
		PaymentID:     m.PaymentID,
		CampaignID:    m.CampaignID,
		TransactionID: m.TransactionID,
		Type:          entities.PaymentType(m.Type),
		Amount:        m.Amount,
		Advance:       m.Advance,
		Balance:       m.Balance,
		Status:        entities.PaymentStatus(m.Status),
		DueDate:       m.DueDate,
		PaidDate:      m.PaidDate,
		InfluencerID:  m.InfluencerID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}
