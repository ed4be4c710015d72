package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brewopshq/brewhaus-backend/internal/products"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order intake and listing operations.
type Service interface {
	Add(ctx context.Context, input CreateOrderInput) (*OrderView, error)
	List(ctx context.Context) ([]OrderView, error)
}

type service struct {
	repo     Repository
	products products.Repository
	tx       txRunner
}

// NewService wires an order service with its collaborators.
func NewService(repo Repository, productRepo products.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: productRepo, tx: tx}, nil
}

// Add fulfills the order from the earliest-produced batch that can cover the
// whole quantity. The lookup and the draw-down run in one transaction, with
// the draw-down conditional on the quantity still being there.
func (s *service) Add(ctx context.Context, input CreateOrderInput) (*OrderView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order name is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := s.products.WithTx(tx).FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		batch, err := repo.EarliestFulfillableBatch(ctx, input.ProductID, input.Quantity)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock to fulfill the order")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find batch for order")
		}

		drawn, err := repo.DrawDownBatch(ctx, batch.ID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "draw down batch")
		}
		if !drawn {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock to fulfill the order")
		}

		order = &models.Order{
			ID:        uuid.New(),
			Name:      name,
			Quantity:  input.Quantity,
			ProductID: input.ProductID,
			BatchID:   &batch.ID,
		}
		if err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toView(order), nil
}

func (s *service) List(ctx context.Context) ([]OrderView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	views := make([]OrderView, 0, len(found))
	for i := range found {
		views = append(views, *toView(&found[i]))
	}
	return views, nil
}

func toView(order *models.Order) *OrderView {
	return &OrderView{
		ID:        order.ID,
		Name:      order.Name,
		Quantity:  order.Quantity,
		ProductID: order.ProductID,
		BatchID:   order.BatchID,
		CreatedAt: order.CreatedAt,
	}
}
