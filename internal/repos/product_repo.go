package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductQuery narrows a product listing. Zero values carry no constraint.
type ProductQuery struct {
	Search     string
	CategoryID int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsActive   *bool
	Limit      int
	Offset     int
}

// ProductWrite holds the columns a client may set.
type ProductWrite struct {
	CategoryID    int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	SKU           string
	IsActive      bool
}

const productColumns = `
    p.id, p.name, p.description, p.price, p.stock_quantity, p.sku, p.is_active,
    p.created_at, p.updated_at,
    c.id AS "category.id", c.name AS "category.name",
    c.description AS "category.description", c.parent_id AS "category.parent_id"
  FROM products p
  JOIN categories c ON c.id = p.category_id`

func (q ProductQuery) where() (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		where = append(where, `(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ? OR LOWER(p.sku) LIKE ?)`)
		like := "%" + s + "%"
		args = append(args, like, like, like)
	}
	if q.CategoryID != 0 {
		where = append(where, `p.category_id = ?`)
		args = append(args, q.CategoryID)
	}
	if q.MinPrice != nil {
		where = append(where, `p.price >= ?`)
		args = append(args, q.MinPrice.InexactFloat64())
	}
	if q.MaxPrice != nil {
		where = append(where, `p.price <= ?`)
		args = append(args, q.MaxPrice.InexactFloat64())
	}
	if q.IsActive != nil {
		where = append(where, `p.is_active = ?`)
		args = append(args, *q.IsActive)
	}
	return strings.Join(where, " AND "), args
}

func (r *ProductRepo) List(q ProductQuery) ([]domain.Product, error) {
	where, args := q.where()
	query := `SELECT ` + productColumns + `
  WHERE ` + where + `
  ORDER BY p.name, p.id
  LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	out := []domain.Product{}
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *ProductRepo) Count(q ProductQuery) (int, error) {
	where, args := q.where()
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products p WHERE `+where, args...)
	return n, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productColumns+` WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}
	p.Images = []domain.ProductImage{}
	err = r.db.Select(&p.Images, `
  SELECT id, product_id, image, alt_text, is_primary
  FROM product_images
  WHERE product_id = ?
  ORDER BY is_primary DESC, id`, id)
	return p, err
}

func (r *ProductRepo) Create(w ProductWrite) (int64, error) {
	res, err := r.db.Exec(`
  INSERT INTO products(category_id, name, description, price, stock_quantity, sku, is_active)
  VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.CategoryID, w.Name, w.Description, w.Price.InexactFloat64(), w.StockQuantity, w.SKU, w.IsActive)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", uniqueViolation(err))
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Update(id int64, w ProductWrite) error {
	res, err := r.db.Exec(`
  UPDATE products
  SET category_id = ?, name = ?, description = ?, price = ?, stock_quantity = ?, sku = ?, is_active = ?,
      updated_at = CURRENT_TIMESTAMP
  WHERE id = ?`,
		w.CategoryID, w.Name, w.Description, w.Price.InexactFloat64(), w.StockQuantity, w.SKU, w.IsActive, id)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, uniqueViolation(err))
	}
	return affectedOne(res)
}

func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
