package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"labportal_backend/internal/quotes/repository"
	"labportal_backend/internal/quotes/transport"

	"github.com/google/uuid"
)

// Workspace loads everything the quotation builder screen needs in one call:
// the recent quotations, the client and product pickers, and the caller's
// working cart. The four reads run concurrently.
func (s *Service) Workspace(ctx context.Context, userID uuid.UUID) (*transport.WorkspaceResponse, error) {
	var resp transport.WorkspaceResponse

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := s.repo.List(gctx, repository.ListParams{Page: 1, PageSize: 50})
		if err != nil {
			return opErr("list quotations", err)
		}
		resp.Quotations = make([]transport.QuotationResponse, 0, len(result.Items))
		for i := range result.Items {
			resp.Quotations = append(resp.Quotations, transport.ToQuotationResponse(&result.Items[i], nil))
		}
		return nil
	})

	g.Go(func() error {
		clients, err := s.clients.ClientOptions(gctx)
		if err != nil {
			return opErr("list clients", err)
		}
		resp.Clients = clients
		return nil
	})

	g.Go(func() error {
		products, err := s.catalog.ProductOptions(gctx)
		if err != nil {
			return opErr("list products", err)
		}
		resp.Products = products
		return nil
	})

	g.Go(func() error {
		cart, err := s.carts.Load(gctx, userID)
		if err != nil {
			return opErr("load cart", err)
		}
		resp.Cart = transport.ToCartResponse(cart)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}
