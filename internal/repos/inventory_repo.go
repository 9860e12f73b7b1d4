package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shopadmin/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Qty returns the current stock of a product.
func (r *InventoryRepo) Qty(productID int64) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT stock_quantity FROM products WHERE id = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return qty, err
}

// SetQty overwrites the stock quantity of one product.
func (r *InventoryRepo) SetQty(productID int64, qty int) error {
	if qty < 0 {
		return fmt.Errorf("stock for product %d cannot be negative", productID)
	}
	res, err := r.db.Exec(`
		UPDATE products SET stock_quantity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	if err != nil {
		return fmt.Errorf("set stock for %d: %w", productID, err)
	}
	return affectedOne(res)
}

// ListLow returns active products whose stock is at or below threshold,
// emptiest first.
func (r *InventoryRepo) ListLow(threshold int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productColumns+`
		WHERE p.is_active = 1 AND p.stock_quantity <= ?
		ORDER BY p.stock_quantity, p.name
	`, threshold)
	return out, err
}
