package adapters

import (
	"context"

	"github.com/google/uuid"

	clirepo "labportal_backend/internal/clients/repository"
	"labportal_backend/internal/quotes/domain"
	"labportal_backend/internal/quotes/transport"
)

// QuotesClientReader adapts the clients repository for the quotes domain,
// satisfying quotes/service.ClientReader.
type QuotesClientReader struct {
	repo *clirepo.Repo
}

// NewQuotesClientReader creates a new client reader adapter.
func NewQuotesClientReader(repo *clirepo.Repo) *QuotesClientReader {
	return &QuotesClientReader{repo: repo}
}

// ClientSnapshot returns the point-in-time client data a quotation captures
// at assembly.
func (a *QuotesClientReader) ClientSnapshot(ctx context.Context, id uuid.UUID) (*domain.ClientSnapshot, error) {
	client, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ClientSnapshot{
		ID:      client.ID,
		Name:    client.Name,
		Company: client.Company,
		Phone:   client.Phone,
		Email:   client.Email,
		Address: client.Address,
	}, nil
}

// ClientOptions returns the slim client list for the quotation builder picker.
func (a *QuotesClientReader) ClientOptions(ctx context.Context) ([]transport.ClientOption, error) {
	clients, err := a.repo.ListOptions(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]transport.ClientOption, 0, len(clients))
	for _, c := range clients {
		options = append(options, transport.ClientOption{
			ID:      c.ID,
			Name:    c.Name,
			Company: c.Company,
		})
	}
	return options, nil
}
