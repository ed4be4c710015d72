package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brewopshq/brewhaus-backend/internal/ingredients"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines recipe catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateRecipeInput) (*RecipeView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*RecipeView, error)
	View(ctx context.Context, id uuid.UUID) (*RecipeView, error)
	ViewAll(ctx context.Context) ([]RecipeView, error)
}

type service struct {
	repo        Repository
	ingredients ingredients.Repository
	tx          txRunner
}

// NewService wires a recipe service with its collaborators.
func NewService(repo Repository, ingredientRepo ingredients.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	if ingredientRepo == nil {
		return nil, fmt.Errorf("ingredient repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, ingredients: ingredientRepo, tx: tx}, nil
}

func validateLines(lines []IngredientLine) error {
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

// findOrCreateIngredient resolves the named ingredient, creating it with no
// stock when the name is new to the catalog.
func findOrCreateIngredient(ctx context.Context, repo ingredients.Repository, name string) (*models.Ingredient, error) {
	ingredient, err := repo.FindByName(ctx, name)
	if err == nil {
		return ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ingredient")
	}
	created := &models.Ingredient{ID: uuid.New(), Name: name}
	if err := repo.Create(ctx, created); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ingredient")
	}
	return created, nil
}

func (s *service) Create(ctx context.Context, input CreateRecipeInput) (*RecipeView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe name is required")
	}
	if len(input.Ingredients) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe requires at least one ingredient")
	}
	if err := validateLines(input.Ingredients); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{ID: uuid.New(), Name: name, Description: input.Description}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ingredientRepo := s.ingredients.WithTx(tx)

		if err := repo.Create(ctx, recipe); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create recipe")
		}
		for _, line := range input.Ingredients {
			ingredient, err := findOrCreateIngredient(ctx, ingredientRepo, strings.TrimSpace(line.Name))
			if err != nil {
				return err
			}
			item := &models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Quantity:     line.Quantity,
			}
			if err := repo.AddLineItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add recipe ingredient")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.View(ctx, recipe.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*RecipeView, error) {
	if len(input.Ingredients) > 0 {
		if err := validateLines(input.Ingredients); err != nil {
			return nil, err
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ingredientRepo := s.ingredients.WithTx(tx)

		recipe, err := repo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Recipe not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe")
		}

		if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
			recipe.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil && *input.Description != "" {
			recipe.Description = *input.Description
		}
		if err := repo.Save(ctx, recipe); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update recipe")
		}

		// An absent ingredient list leaves the existing lines alone.
		if len(input.Ingredients) == 0 {
			return nil
		}

		existing, err := repo.LineItems(ctx, recipe.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe ingredients")
		}
		current := make(map[uuid.UUID]int, len(existing))
		for _, line := range existing {
			current[line.IngredientID] = line.Quantity
		}

		for _, line := range input.Ingredients {
			ingredient, err := findOrCreateIngredient(ctx, ingredientRepo, strings.TrimSpace(line.Name))
			if err != nil {
				return err
			}
			oldQty, present := current[ingredient.ID]
			switch {
			case !present:
				item := &models.RecipeIngredient{
					RecipeID:     recipe.ID,
					IngredientID: ingredient.ID,
					Quantity:     line.Quantity,
				}
				if err := repo.AddLineItem(ctx, item); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add recipe ingredient")
				}
			case oldQty != line.Quantity:
				if err := repo.UpdateLineItemQuantity(ctx, recipe.ID, ingredient.ID, line.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update recipe ingredient")
				}
			}
			delete(current, ingredient.ID)
		}

		removed := make([]uuid.UUID, 0, len(current))
		for ingredientID := range current {
			removed = append(removed, ingredientID)
		}
		if err := repo.DeleteLineItems(ctx, recipe.ID, removed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove recipe ingredients")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.View(ctx, id)
}

func (s *service) View(ctx context.Context, id uuid.UUID) (*RecipeView, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Recipe not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe")
	}

	lines, err := s.repo.NamedLineItems(ctx, recipe.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe ingredients")
	}
	return toView(recipe, lines), nil
}

func (s *service) ViewAll(ctx context.Context) ([]RecipeView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recipes")
	}

	views := make([]RecipeView, 0, len(found))
	for i := range found {
		lines, err := s.repo.NamedLineItems(ctx, found[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe ingredients")
		}
		views = append(views, *toView(&found[i], lines))
	}
	return views, nil
}

func toView(recipe *models.Recipe, lines []NamedLine) *RecipeView {
	view := &RecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Description: recipe.Description,
		Ingredients: make([]IngredientLine, 0, len(lines)),
	}
	for _, line := range lines {
		view.Ingredients = append(view.Ingredients, IngredientLine{Name: line.Name, Quantity: line.Quantity})
	}
	return view
}
