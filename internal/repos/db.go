package repos

import (
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("already exists")
)

func uniqueViolation(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seed {
		if err := seedIfEmpty(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  parent_id INTEGER NULL REFERENCES categories(id) ON DELETE SET NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  sku TEXT NOT NULL UNIQUE,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_stock    ON products(stock_quantity);

CREATE TABLE IF NOT EXISTS product_images(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  image TEXT NOT NULL,
  alt_text TEXT NOT NULL DEFAULT '',
  is_primary INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

CREATE TABLE IF NOT EXISTS reviews(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id INTEGER NOT NULL,
  user_name TEXT NOT NULL DEFAULT '',
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/reviews")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description,parent_id) VALUES
	  (1,'Electronics','Gadgets and devices',NULL),
	  (2,'Lighting','Lamps and bulbs',1),
	  (3,'Furniture','Desks, chairs and shelves',NULL),
	  (4,'Office Supplies','Paper, pens and organizers',NULL)`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,stock_quantity,sku,is_active) VALUES
	  (1,2,'Desk Lamp','Adjustable LED desk lamp',29.99,3,'LGT-001',1),
	  (2,2,'Floor Lamp','Arc floor lamp with dimmer',89.00,12,'LGT-002',1),
	  (3,1,'USB-C Hub','7-in-1 aluminium hub',45.50,0,'ELC-001',1),
	  (4,1,'Wireless Mouse','Silent-click wireless mouse',19.99,57,'ELC-002',1),
	  (5,3,'Standing Desk','Electric sit/stand desk',499.00,5,'FUR-001',1),
	  (6,3,'Office Chair','Ergonomic mesh chair',249.00,21,'FUR-002',1),
	  (7,4,'Notebook Pack','Five A5 dotted notebooks',12.50,140,'OFS-001',1),
	  (8,4,'Fountain Pen','Steel nib fountain pen',35.00,8,'OFS-002',0)`)

	tx.MustExec(`INSERT INTO product_images(product_id,image,alt_text,is_primary) VALUES
	  (1,'products/1/main.jpg','Desk lamp, front',1),
	  (5,'products/5/main.jpg','Standing desk, raised',1)`)

	tx.MustExec(`INSERT INTO reviews(product_id,user_id,user_name,rating,comment) VALUES
	  (1,1,'alice',5,'Bright and compact.'),
	  (1,2,'bob',3,'Clamp is flimsy.'),
	  (6,1,'alice',4,'Comfortable for long days.')`)

	return tx.Commit()
}
