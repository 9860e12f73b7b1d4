package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shopadmin/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// List returns reviews newest first; productID 0 lists all.
func (r *ReviewRepo) List(productID int64) ([]domain.ProductReview, error) {
	out := []domain.ProductReview{}
	query := `SELECT id, product_id, user_id, rating, comment, created_at, user_name FROM reviews`
	args := []any{}
	if productID != 0 {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	err := r.db.Select(&out, query, args...)
	return out, err
}

func (r *ReviewRepo) Get(id int64) (domain.ProductReview, error) {
	var rv domain.ProductReview
	err := r.db.Get(&rv, `SELECT id, product_id, user_id, rating, comment, created_at, user_name FROM reviews WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return rv, ErrNotFound
	}
	return rv, err
}

func (r *ReviewRepo) Create(rv domain.ProductReview) (int64, error) {
	res, err := r.db.Exec(`
  INSERT INTO reviews(product_id, user_id, user_name, rating, comment)
  VALUES (?, ?, ?, ?, ?)`, rv.Product, rv.User, rv.UserName, rv.Rating, rv.Comment)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	return res.LastInsertId()
}
