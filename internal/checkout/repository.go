package checkout

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// InvoiceRepository handles the append-only invoice store.
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository binds a GORM DB to invoice operations.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateWithTx appends an invoice inside the provided transaction.
func (r *InvoiceRepository) CreateWithTx(tx *gorm.DB, userID uuid.UUID, content string) (*models.Invoice, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	invoice := &models.Invoice{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
	}
	if err := tx.Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}
