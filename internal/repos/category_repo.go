package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shopadmin/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT id, name, description, parent_id
  FROM categories
  ORDER BY name
`)
	return out, err
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, description, parent_id FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (r *CategoryRepo) Create(name, description string, parent *int64) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name, description, parent_id) VALUES (?, ?, ?)`,
		name, description, parent)
	if err != nil {
		return 0, fmt.Errorf("insert category %q: %w", name, uniqueViolation(err))
	}
	return res.LastInsertId()
}
