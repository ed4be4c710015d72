// Package grn reconciles goods-received notes against the stock ledger.
// Creating a GRN adds its received quantities to on-hand stock; editing one
// applies only the difference between the old and new line items, so the
// ledger always reflects exactly what the stored GRNs say was received.
package grn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brewopshq/brewhaus-backend/internal/ingredients"
	"github.com/brewopshq/brewhaus-backend/internal/stock"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines GRN intake and reconciliation operations.
type Service interface {
	Create(ctx context.Context, input CreateGRNInput) (*GRNView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGRNInput) (*GRNView, error)
	View(ctx context.Context, id uuid.UUID) (*GRNView, error)
	ViewAll(ctx context.Context) ([]GRNView, error)
}

type service struct {
	repo        Repository
	ingredients ingredients.Repository
	tx          txRunner
	now         func() time.Time
}

// NewService wires a GRN service with its collaborators.
func NewService(repo Repository, ingredientRepo ingredients.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("grn repository required")
	}
	if ingredientRepo == nil {
		return nil, fmt.Errorf("ingredient repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, ingredients: ingredientRepo, tx: tx, now: time.Now}, nil
}

func validateLines(lines []LineInput) error {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "ingredient name is required")
		}
		if line.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for ingredient %q must be at least 1", name))
		}
		if _, dup := seen[name]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("ingredient %q appears more than once", name))
		}
		seen[name] = struct{}{}
	}
	return nil
}

// findIngredient resolves a named ingredient without creating it. GRNs only
// receive stock for ingredients the catalog already knows.
func findIngredient(ctx context.Context, repo ingredients.Repository, name string) (*models.Ingredient, error) {
	ingredient, err := repo.FindByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Ingredient not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ingredient")
	}
	return ingredient, nil
}

func (s *service) Create(ctx context.Context, input CreateGRNInput) (*GRNView, error) {
	if len(input.Ingredients) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grn requires at least one ingredient")
	}
	if err := validateLines(input.Ingredients); err != nil {
		return nil, err
	}

	issued := s.now().UTC()
	if input.IssuedDate != nil && !input.IssuedDate.IsZero() {
		issued = input.IssuedDate.UTC()
	}

	header := &models.GRN{ID: uuid.New(), IssuedDate: issued}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ingredientRepo := s.ingredients.WithTx(tx)

		if err := repo.Create(ctx, header); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create grn")
		}
		for _, line := range input.Ingredients {
			ingredient, err := findIngredient(ctx, ingredientRepo, strings.TrimSpace(line.Name))
			if err != nil {
				return err
			}
			item := &models.GRNLineItem{
				GRNID:        header.ID,
				IngredientID: ingredient.ID,
				Quantity:     line.Quantity,
			}
			if err := repo.AddLineItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add grn line item")
			}
			if err := stock.ApplyDelta(ctx, tx, ingredient.ID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.View(ctx, header.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateGRNInput) (*GRNView, error) {
	if len(input.Ingredients) > 0 {
		if err := validateLines(input.Ingredients); err != nil {
			return nil, err
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ingredientRepo := s.ingredients.WithTx(tx)

		header, err := repo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "GRN not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load grn")
		}

		if input.IssuedDate != nil && !input.IssuedDate.IsZero() {
			header.IssuedDate = input.IssuedDate.UTC()
			if err := repo.Save(ctx, header); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update grn")
			}
		}

		existing, err := repo.LineItems(ctx, header.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load grn line items")
		}
		current := make(map[uuid.UUID]int, len(existing))
		for _, line := range existing {
			current[line.IngredientID] = line.Quantity
		}

		for _, line := range input.Ingredients {
			ingredient, err := findIngredient(ctx, ingredientRepo, strings.TrimSpace(line.Name))
			if err != nil {
				return err
			}
			oldQty, present := current[ingredient.ID]
			switch {
			case !present:
				item := &models.GRNLineItem{
					GRNID:        header.ID,
					IngredientID: ingredient.ID,
					Quantity:     line.Quantity,
				}
				if err := repo.AddLineItem(ctx, item); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add grn line item")
				}
				if err := stock.ApplyDelta(ctx, tx, ingredient.ID, line.Quantity); err != nil {
					return err
				}
			case oldQty != line.Quantity:
				if err := repo.UpdateLineItemQuantity(ctx, header.ID, ingredient.ID, line.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update grn line item")
				}
				if err := stock.ApplyDelta(ctx, tx, ingredient.ID, line.Quantity-oldQty); err != nil {
					return err
				}
			}
			delete(current, ingredient.ID)
		}

		// Anything left was dropped from the submission (or the whole list
		// was omitted): reverse its receipt and delete the row.
		removed := make([]uuid.UUID, 0, len(current))
		for ingredientID, oldQty := range current {
			if err := stock.ApplyDelta(ctx, tx, ingredientID, -oldQty); err != nil {
				return err
			}
			removed = append(removed, ingredientID)
		}
		if err := repo.DeleteLineItems(ctx, header.ID, removed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove grn line items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.View(ctx, id)
}

func (s *service) View(ctx context.Context, id uuid.UUID) (*GRNView, error) {
	header, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "GRN not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load grn")
	}

	lines, err := s.repo.NamedLineItems(ctx, header.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load grn line items")
	}
	return toView(header, lines), nil
}

func (s *service) ViewAll(ctx context.Context) ([]GRNView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list grns")
	}

	views := make([]GRNView, 0, len(found))
	for i := range found {
		lines, err := s.repo.NamedLineItems(ctx, found[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load grn line items")
		}
		views = append(views, *toView(&found[i], lines))
	}
	return views, nil
}

func toView(header *models.GRN, lines []NamedLine) *GRNView {
	view := &GRNView{
		ID:          header.ID,
		IssuedDate:  header.IssuedDate,
		Ingredients: make([]LineView, 0, len(lines)),
	}
	for _, line := range lines {
		view.Ingredients = append(view.Ingredients, LineView{Name: line.Name, Quantity: line.Quantity})
	}
	return view
}
