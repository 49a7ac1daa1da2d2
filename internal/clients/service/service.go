package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"labportal_backend/internal/clients/repository"
	"labportal_backend/internal/clients/transport"
	"labportal_backend/platform/logger"
	"labportal_backend/platform/phone"
)

// Service provides business logic for clients.
type Service struct {
	repo *repository.Repo
	log  *logger.Logger
}

// New creates a new clients service.
func New(repo *repository.Repo, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create creates a client with a normalized phone number.
func (s *Service) Create(ctx context.Context, req transport.CreateClientRequest) (transport.ClientResponse, error) {
	client, err := s.repo.Create(ctx, repository.CreateClientParams{
		Name:    strings.TrimSpace(req.Name),
		Company: strings.TrimSpace(req.Company),
		Phone:   phone.NormalizeE164(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Address: strings.TrimSpace(req.Address),
	})
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(client), nil
}

// Update updates a client. Existing quotations keep the client data they
// snapshotted at assembly time.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateClientRequest) (transport.ClientResponse, error) {
	var phoneNumber *string
	if req.Phone != nil {
		v := phone.NormalizeE164(*req.Phone)
		phoneNumber = &v
	}

	client, err := s.repo.Update(ctx, repository.UpdateClientParams{
		ID:      id,
		Name:    req.Name,
		Company: req.Company,
		Phone:   phoneNumber,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(client), nil
}

// Delete deletes a client.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Get retrieves a client by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.ClientResponse, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(client), nil
}

// List retrieves clients with search and pagination.
func (s *Service) List(ctx context.Context, req transport.ListClientsRequest) (transport.ClientListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	clients, total, err := s.repo.List(ctx, repository.ListClientsParams{
		Search: strings.TrimSpace(req.Search),
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.ClientListResponse{}, err
	}

	items := make([]transport.ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, toResponse(client))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.ClientListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func toResponse(c repository.Client) transport.ClientResponse {
	return transport.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
