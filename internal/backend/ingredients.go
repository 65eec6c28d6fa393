package backend

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// IngredientsAPI wraps the admin ingredient endpoints.
type IngredientsAPI struct {
	client *Client
}

// Ingredients returns the ingredients API bound to this client.
func (c *Client) Ingredients() *IngredientsAPI { return &IngredientsAPI{client: c} }

// List fetches one page of ingredients.
func (i *IngredientsAPI) List(ctx context.Context, opts model.IngredientListOptions) (model.Page[model.Ingredient], error) {
	q := listQuery(opts.ListOptions)
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}

	var data json.RawMessage
	if err := i.client.Get(ctx, pathIngredients, q, &data); err != nil {
		return model.Page[model.Ingredient]{}, err
	}
	return decodePage[model.Ingredient](data)
}

// Get fetches one ingredient by ID.
func (i *IngredientsAPI) Get(ctx context.Context, id string) (model.Ingredient, error) {
	if id == "" {
		return model.Ingredient{}, apperrors.Validation("ingredient ID is required")
	}
	var ing model.Ingredient
	err := i.client.Get(ctx, pathIngredients+"/"+url.PathEscape(id), nil, &ing)
	return ing, err
}

// Create creates an ingredient.
func (i *IngredientsAPI) Create(ctx context.Context, input model.CreateIngredientInput) (model.Ingredient, error) {
	var ing model.Ingredient
	err := i.client.Post(ctx, pathIngredients, input, &ing)
	return ing, err
}

// Update updates an ingredient.
func (i *IngredientsAPI) Update(ctx context.Context, id string, input model.UpdateIngredientInput) (model.Ingredient, error) {
	if id == "" {
		return model.Ingredient{}, apperrors.Validation("ingredient ID is required")
	}
	var ing model.Ingredient
	err := i.client.Put(ctx, pathIngredients+"/"+url.PathEscape(id), input, &ing)
	return ing, err
}

// Delete removes an ingredient.
func (i *IngredientsAPI) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("ingredient ID is required")
	}
	return i.client.Delete(ctx, pathIngredients+"/"+url.PathEscape(id), nil)
}
