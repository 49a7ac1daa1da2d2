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

const clientNotFoundMessage = "client not found"

// Client is the database model for a client of the distributor.
type Client struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Company   string    `db:"company"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	CreatedAt string    `db:"created_at"`
	UpdatedAt string    `db:"updated_at"`
}

// CreateClientParams contains data for creating a client.
type CreateClientParams struct {
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
}

// UpdateClientParams contains data for updating a client.
// Nil fields are left unchanged.
type UpdateClientParams struct {
	ID      uuid.UUID
	Name    *string
	Company *string
	Phone   *string
	Email   *string
	Address *string
}

// ListClientsParams defines filters for listing clients.
type ListClientsParams struct {
	Search string
	Offset int
	Limit  int
}

// Repo provides database operations for clients.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const clientColumns = `id, name, company, phone, email, address, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&c.ID, &c.Name, &c.Company, &c.Phone, &c.Email, &c.Address,
		&createdAt, &updatedAt,
	); err != nil {
		return Client{}, err
	}
	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}

// Create creates a client.
func (r *Repo) Create(ctx context.Context, params CreateClientParams) (Client, error) {
	query := `
		INSERT INTO clients (name, company, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + clientColumns

	client, err := scanClient(r.pool.QueryRow(ctx, query,
		params.Name, params.Company, params.Phone, params.Email, params.Address,
	))
	if err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// Update updates a client. Nil params leave columns unchanged.
func (r *Repo) Update(ctx context.Context, params UpdateClientParams) (Client, error) {
	query := `
		UPDATE clients
		SET name = COALESCE($2, name),
			company = COALESCE($3, company),
			phone = COALESCE($4, phone),
			email = COALESCE($5, email),
			address = COALESCE($6, address),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + clientColumns

	client, err := scanClient(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Company, params.Phone, params.Email, params.Address,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

// Delete deletes a client. Quotations keep their snapshotted client data.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMessage)
	}
	return nil
}

// GetByID retrieves a client by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("get client by id: %w", err)
	}
	return client, nil
}

// List lists clients with search and pagination.
func (r *Repo) List(ctx context.Context, params ListClientsParams) ([]Client, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM clients WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM clients
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`, clientColumns, whereClause, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, total, nil
}

// ListOptions returns every client in picker order.
func (r *Repo) ListOptions(ctx context.Context) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list client options: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client option: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client options: %w", err)
	}
	return clients, nil
}
