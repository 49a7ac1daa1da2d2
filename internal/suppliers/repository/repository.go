package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"labportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const supplierNotFoundMessage = "supplier not found"

// Supplier is the database model for an equipment supplier.
type Supplier struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Company   string    `db:"company"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	RFC       string    `db:"rfc"`
	Country   string    `db:"country"`
	Address   string    `db:"address"`
	CreatedAt string    `db:"created_at"`
	UpdatedAt string    `db:"updated_at"`
}

// CreateSupplierParams contains data for creating a supplier.
type CreateSupplierParams struct {
	Name    string
	Company string
	Phone   string
	Email   string
	RFC     string
	Country string
	Address string
}

// UpdateSupplierParams contains data for updating a supplier.
// Nil fields are left unchanged.
type UpdateSupplierParams struct {
	ID      uuid.UUID
	Name    *string
	Company *string
	Phone   *string
	Email   *string
	RFC     *string
	Country *string
	Address *string
}

// ListSuppliersParams defines filters for listing suppliers.
type ListSuppliersParams struct {
	Search string
	Offset int
	Limit  int
}

// Repo provides database operations for suppliers.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new suppliers repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const supplierColumns = `id, name, company, phone, email, rfc, country, address, created_at, updated_at`

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&s.ID, &s.Name, &s.Company, &s.Phone, &s.Email,
		&s.RFC, &s.Country, &s.Address, &createdAt, &updatedAt,
	); err != nil {
		return Supplier{}, err
	}
	s.CreatedAt = createdAt.Format(time.RFC3339)
	s.UpdatedAt = updatedAt.Format(time.RFC3339)
	return s, nil
}

// Create creates a supplier.
func (r *Repo) Create(ctx context.Context, params CreateSupplierParams) (Supplier, error) {
	query := `
		INSERT INTO suppliers (name, company, phone, email, rfc, country, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + supplierColumns

	supplier, err := scanSupplier(r.pool.QueryRow(ctx, query,
		params.Name, params.Company, params.Phone, params.Email,
		params.RFC, params.Country, params.Address,
	))
	if err != nil {
		return Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

// Update updates a supplier. Nil params leave columns unchanged.
func (r *Repo) Update(ctx context.Context, params UpdateSupplierParams) (Supplier, error) {
	query := `
		UPDATE suppliers
		SET name = COALESCE($2, name),
			company = COALESCE($3, company),
			phone = COALESCE($4, phone),
			email = COALESCE($5, email),
			rfc = COALESCE($6, rfc),
			country = COALESCE($7, country),
			address = COALESCE($8, address),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + supplierColumns

	supplier, err := scanSupplier(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Company, params.Phone, params.Email,
		params.RFC, params.Country, params.Address,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, apperr.NotFound(supplierNotFoundMessage)
		}
		return Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

// Delete deletes a supplier.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(supplierNotFoundMessage)
	}
	return nil
}

// GetByID retrieves a supplier by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	supplier, err := scanSupplier(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, apperr.NotFound(supplierNotFoundMessage)
		}
		return Supplier{}, fmt.Errorf("get supplier by id: %w", err)
	}
	return supplier, nil
}

// List lists suppliers with search and pagination.
func (r *Repo) List(ctx context.Context, params ListSuppliersParams) ([]Supplier, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name ILIKE $%d OR company ILIKE $%d OR rfc ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM suppliers WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM suppliers
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`, supplierColumns, whereClause, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate suppliers: %w", err)
	}

	return suppliers, total, nil
}
