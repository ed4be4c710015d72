// Package batches turns recipes and on-hand stock into production runs.
// Creating a batch checks every ingredient requirement against the ledger
// and consumes the stock in the same transaction; a shortfall on any
// ingredient rejects the whole run.
package batches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brewopshq/brewhaus-backend/internal/products"
	"github.com/brewopshq/brewhaus-backend/internal/recipes"
	"github.com/brewopshq/brewhaus-backend/internal/stock"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines batch production operations.
type Service interface {
	Create(ctx context.Context, input CreateBatchInput) (*BatchView, error)
	List(ctx context.Context) ([]BatchView, error)
	Edit(ctx context.Context, id uuid.UUID, input EditBatchInput) (*BatchView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	products products.Repository
	recipes  recipes.Repository
	tx       txRunner
	now      func() time.Time
}

// NewService wires a batch service with its collaborators.
func NewService(repo Repository, productRepo products.Repository, recipeRepo recipes.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("batch repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if recipeRepo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: productRepo, recipes: recipeRepo, tx: tx, now: time.Now}, nil
}

func insufficientFor(name string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "Ingredients not sufficient to make the batch, name: "+name)
}

func (s *service) Create(ctx context.Context, input CreateBatchInput) (*BatchView, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if input.BatchCount < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "batch_count must be at least 1")
	}

	var batch *models.Batch
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		product, err := s.products.WithTx(tx).FindByID(ctx, input.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		if _, err := s.recipes.WithTx(tx).FindByID(ctx, product.RecipeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Recipe not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe")
		}

		reqs, err := recipes.Requirements(ctx, tx, product.RecipeID)
		if err != nil {
			return err
		}

		// Reject before writing anything if any ingredient falls short.
		for _, req := range reqs {
			onHand, err := stock.GetQuantity(ctx, tx, req.IngredientID)
			if err != nil {
				return err
			}
			if onHand < req.PerUnit*input.BatchCount {
				return insufficientFor(req.Name)
			}
		}

		produced := s.now().UTC()
		batch = &models.Batch{
			ID:                uuid.New(),
			Name:              fmt.Sprintf("Batch of Product: %s of type: %s", product.Name, product.Type),
			ProductionDate:    produced,
			InitialQuantity:   product.BatchSize,
			AvailableQuantity: product.BatchSize,
			DateOfExpiry:      produced.AddDate(0, product.ExpireDuration, 0),
			ProductID:         product.ID,
		}
		if err := s.repo.WithTx(tx).Create(ctx, batch); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create batch")
		}

		for _, req := range reqs {
			err := stock.ConsumeExact(ctx, tx, req.IngredientID, req.PerUnit*input.BatchCount)
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeInsufficientStock {
				return insufficientFor(req.Name)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toView(batch), nil
}

func (s *service) List(ctx context.Context) ([]BatchView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list batches")
	}
	views := make([]BatchView, 0, len(found))
	for i := range found {
		views = append(views, *toView(&found[i]))
	}
	return views, nil
}

// Edit corrects batch bookkeeping fields. Ingredient consumption recorded at
// creation time is intentionally left alone.
func (s *service) Edit(ctx context.Context, id uuid.UUID, input EditBatchInput) (*BatchView, error) {
	batch, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Batch not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load batch")
	}

	if input.Name != nil && *input.Name != "" {
		batch.Name = *input.Name
	}
	if input.ProductionDate != nil && !input.ProductionDate.IsZero() {
		batch.ProductionDate = input.ProductionDate.UTC()
	}
	if input.InitialQuantity != nil {
		if *input.InitialQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial_quantity cannot be negative")
		}
		batch.InitialQuantity = *input.InitialQuantity
	}
	if input.AvailableQuantity != nil {
		if *input.AvailableQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "available_quantity cannot be negative")
		}
		batch.AvailableQuantity = *input.AvailableQuantity
	}
	if input.DateOfExpiry != nil && !input.DateOfExpiry.IsZero() {
		batch.DateOfExpiry = input.DateOfExpiry.UTC()
	}

	if err := s.repo.Save(ctx, batch); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update batch")
	}
	return toView(batch), nil
}

// Delete removes the batch record. Consumed ingredients are not returned to
// the ledger; the production run still happened.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Batch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load batch")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete batch")
	}
	return nil
}

func toView(batch *models.Batch) *BatchView {
	return &BatchView{
		ID:                batch.ID,
		Name:              batch.Name,
		ProductionDate:    batch.ProductionDate,
		InitialQuantity:   batch.InitialQuantity,
		AvailableQuantity: batch.AvailableQuantity,
		DateOfExpiry:      batch.DateOfExpiry,
		ProductID:         batch.ProductID,
	}
}
