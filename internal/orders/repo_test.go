package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  date_ordered DATETIME NOT NULL
);`
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func TestCreateWithTxAppendsOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()
	orderedAt := time.Now().UTC()

	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := repo.CreateWithTx(tx, userID, productID, 3, orderedAt)
		require.NoError(t, err)
		assert.Equal(t, 3, order.Quantity)
		return nil
	})
	require.NoError(t, err)

	exists, err := repo.ExistsForUserProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateWithTxRequiresTx(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	_, err := repo.CreateWithTx(nil, uuid.New(), uuid.New(), 1, time.Now())
	assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
}

func TestExistsForUserProductFalseWithoutOrders(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	exists, err := repo.ExistsForUserProduct(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
