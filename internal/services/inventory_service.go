package services

import (
	"fmt"

	"shopadmin/internal/domain"
	"shopadmin/internal/repos"
)

const DefaultLowStockThreshold = 5

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// UpdateStock sets the stock of one product and reports the quantity it
// replaced; negative quantities are rejected.
func (s *InventoryService) UpdateStock(productID int64, qty int) (domain.StockAck, error) {
	if qty < 0 {
		return domain.StockAck{}, fmt.Errorf("%w: stock_quantity cannot be negative", ErrInvalid)
	}
	prev, err := s.Inv.Qty(productID)
	if err != nil {
		return domain.StockAck{}, err
	}
	if err := s.Inv.SetQty(productID, qty); err != nil {
		return domain.StockAck{}, err
	}
	return domain.StockAck{Status: "stock updated", ID: productID, StockQuantity: qty, Previous: prev}, nil
}

// LowStock lists active products at or below threshold; threshold <= 0 uses
// the default of 5.
func (s *InventoryService) LowStock(threshold int) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.Inv.ListLow(threshold)
}
