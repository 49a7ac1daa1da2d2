package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// Quotation is the database model for a quotation header. Client data is
// snapshotted at creation time so later client edits do not rewrite history.
type Quotation struct {
	ID              uuid.UUID       `db:"id"`
	QuotationNumber string          `db:"quotation_number"`
	Status          string          `db:"status"`
	ClientID        uuid.UUID       `db:"client_id"`
	ClientName      string          `db:"client_name"`
	ClientCompany   string          `db:"client_company"`
	ClientPhone     string          `db:"client_phone"`
	ClientEmail     string          `db:"client_email"`
	ClientAddress   string          `db:"client_address"`
	Total           decimal.Decimal `db:"total"`
	ItemCount       int             `db:"item_count"`
	CreatedBy       uuid.UUID       `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
}

// QuotationItem is the database model for a quotation line item.
type QuotationItem struct {
	ID           uuid.UUID       `db:"id"`
	QuotationID  uuid.UUID       `db:"quotation_id"`
	ProductID    uuid.UUID       `db:"product_id"`
	Code         string          `db:"code"`
	Name         string          `db:"name"`
	SupplierName string          `db:"supplier_name"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	Quantity     int             `db:"quantity"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	SortOrder    int             `db:"sort_order"`
}

// ListParams contains parameters for listing quotations.
type ListParams struct {
	Status   *string
	Page     int
	PageSize int
}

// ListResult contains the paginated result of listing quotations.
type ListResult struct {
	Items      []Quotation
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ── Repository ────────────────────────────────────────────────────────────────

const quotationNotFoundMsg = "quotation not found"

// Repository provides database operations for quotations.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotations repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NextQuotationNumber atomically generates the next quotation number.
func (r *Repository) NextQuotationNumber(ctx context.Context) (string, error) {
	var nextNum int
	query := `
		INSERT INTO quotation_counters (year, last_number)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_number = quotation_counters.last_number + 1
		RETURNING last_number`

	year := time.Now().Year()
	if err := r.pool.QueryRow(ctx, query, year).Scan(&nextNum); err != nil {
		return "", fmt.Errorf("failed to generate quotation number: %w", err)
	}

	return fmt.Sprintf("COT-%d-%04d", year, nextNum), nil
}

// CreateWithItems inserts a quotation and its line items in a single transaction.
func (r *Repository) CreateWithItems(ctx context.Context, quotation *Quotation, items []QuotationItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quotationQuery := `
		INSERT INTO quotations (
			id, quotation_number, status,
			client_id, client_name, client_company, client_phone, client_email, client_address,
			total, item_count, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $12, $13)`

	if _, err := tx.Exec(ctx, quotationQuery,
		quotation.ID, quotation.QuotationNumber, quotation.Status,
		quotation.ClientID, quotation.ClientName, quotation.ClientCompany,
		quotation.ClientPhone, quotation.ClientEmail, quotation.ClientAddress,
		quotation.Total.String(), quotation.ItemCount, quotation.CreatedBy, quotation.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quotation: %w", err)
	}

	itemQuery := `
		INSERT INTO quotation_items (
			id, quotation_id, product_id, code, name, supplier_name,
			unit_price, quantity, subtotal, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9::numeric, $10)`

	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.QuotationID, item.ProductID,
			item.Code, item.Name, item.SupplierName,
			item.UnitPrice.String(), item.Quantity, item.Subtotal.String(), item.SortOrder,
		); err != nil {
			return fmt.Errorf("failed to insert quotation item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a quotation by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	var q Quotation
	var total string
	query := `
		SELECT id, quotation_number, status,
			client_id, client_name, client_company, client_phone, client_email, client_address,
			total::text, item_count, created_by, created_at
		FROM quotations WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.QuotationNumber, &q.Status,
		&q.ClientID, &q.ClientName, &q.ClientCompany,
		&q.ClientPhone, &q.ClientEmail, &q.ClientAddress,
		&total, &q.ItemCount, &q.CreatedBy, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quotationNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	if q.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("failed to parse quotation total: %w", err)
	}
	return &q, nil
}

// GetItemsByQuotationID retrieves all items for a quotation in insertion order.
func (r *Repository) GetItemsByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]QuotationItem, error) {
	query := `
		SELECT id, quotation_id, product_id, code, name, supplier_name,
			unit_price::text, quantity, subtotal::text, sort_order
		FROM quotation_items WHERE quotation_id = $1
		ORDER BY sort_order ASC`

	rows, err := r.pool.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotation items: %w", err)
	}
	defer rows.Close()

	var items []QuotationItem
	for rows.Next() {
		var it QuotationItem
		var unitPrice, subtotal string
		if err := rows.Scan(
			&it.ID, &it.QuotationID, &it.ProductID,
			&it.Code, &it.Name, &it.SupplierName,
			&unitPrice, &it.Quantity, &subtotal, &it.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation item: %w", err)
		}
		if it.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse item unit price: %w", err)
		}
		if it.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("failed to parse item subtotal: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotation items: %w", err)
	}
	return items, nil
}

// UpdateStatus updates the status of a quotation.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE quotations SET status = $2 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update quotation status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quotationNotFoundMsg)
	}
	return nil
}

// Delete removes a quotation (cascade deletes items).
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM quotations WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quotationNotFoundMsg)
	}
	return nil
}

// List retrieves quotations newest first with optional status filtering.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	baseQuery := `
		FROM quotations
		WHERE ($1::text IS NULL OR status = $1)
	`
	args := []interface{}{statusParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count quotations: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `
		SELECT id, quotation_number, status,
			client_id, client_name, client_company, client_phone, client_email, client_address,
			total::text, item_count, created_by, created_at
		` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	var items []Quotation
	for rows.Next() {
		var q Quotation
		var totalText string
		if err := rows.Scan(
			&q.ID, &q.QuotationNumber, &q.Status,
			&q.ClientID, &q.ClientName, &q.ClientCompany,
			&q.ClientPhone, &q.ClientEmail, &q.ClientAddress,
			&totalText, &q.ItemCount, &q.CreatedBy, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		if q.Total, err = decimal.NewFromString(totalText); err != nil {
			return nil, fmt.Errorf("failed to parse quotation total: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotations: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}
