package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"labportal_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

const productColumns = `
	p.id, p.code, p.name, p.specification,
	p.unit_price::text, p.stock_quantity,
	p.supplier_id, COALESCE(s.name, ''), p.image_key,
	p.created_at, p.updated_at`

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var unitPrice string
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Specification,
		&unitPrice, &p.StockQuantity,
		&p.SupplierID, &p.SupplierName, &p.ImageKey,
		&createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}

	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return Product{}, fmt.Errorf("parse unit price: %w", err)
	}
	p.UnitPrice = price
	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)
	return p, nil
}

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO products (code, name, specification, unit_price, stock_quantity, supplier_id, image_key)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query,
		params.Code, params.Name, params.Specification,
		params.UnitPrice.String(), params.StockQuantity, params.SupplierID, params.ImageKey,
	).Scan(&id); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	return r.GetProductByID(ctx, id)
}

// UpdateProduct updates a product. Nil params leave columns unchanged.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	var unitPrice *string
	if params.UnitPrice != nil {
		v := params.UnitPrice.String()
		unitPrice = &v
	}

	query := `
		UPDATE products
		SET code = COALESCE($2, code),
			name = COALESCE($3, name),
			specification = COALESCE($4, specification),
			unit_price = COALESCE($5::numeric, unit_price),
			stock_quantity = COALESCE($6, stock_quantity),
			supplier_id = COALESCE($7, supplier_id),
			image_key = COALESCE($8, image_key),
			updated_at = now()
		WHERE id = $1
		RETURNING id`

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.Code, params.Name, params.Specification,
		unitPrice, params.StockQuantity, params.SupplierID, params.ImageKey,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	return r.GetProductByID(ctx, id)
}

// DeleteProduct deletes a product.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts lists products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(p.code ILIKE $%d OR p.name ILIKE $%d OR p.specification ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.SupplierID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.supplier_id = $%d", argIdx))
		args = append(args, *params.SupplierID)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE %s
		ORDER BY p.name ASC
		LIMIT $%d OFFSET $%d`, productColumns, whereClause, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, total, nil
}

// ListProductOptions returns every product in picker order.
func (r *Repo) ListProductOptions(ctx context.Context) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list product options: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product option: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product options: %w", err)
	}
	return products, nil
}

// HasProductsWithSupplier reports whether any product references the supplier.
func (r *Repo) HasProductsWithSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE supplier_id = $1)`
	if err := r.pool.QueryRow(ctx, query, supplierID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check supplier usage: %w", err)
	}
	return exists, nil
}
