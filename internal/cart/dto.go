package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmoreno/bazaar-backend/pkg/db/models"
)

// ItemDTO is one cart line with its product snapshot and line total.
type ItemDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartDTO is the user's cart with the running total.
type CartDTO struct {
	Items []ItemDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func itemFromModel(item *models.CartItem) ItemDTO {
	dto := ItemDTO{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
		dto.UnitPrice = item.Product.Price
		dto.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return dto
}
