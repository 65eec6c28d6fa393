package backend

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// MealsAPI wraps the meal endpoints.
type MealsAPI struct {
	client *Client
}

// Meals returns the meals API bound to this client.
func (c *Client) Meals() *MealsAPI { return &MealsAPI{client: c} }

// List fetches one page of meals.
func (m *MealsAPI) List(ctx context.Context, opts model.MealListOptions) (model.Page[model.Meal], error) {
	q := listQuery(opts.ListOptions)
	if opts.Status != nil {
		q.Set("status", opts.Status.String())
	}
	if opts.DietType != "" {
		q.Set("dietType", opts.DietType)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}

	var data json.RawMessage
	if err := m.client.Get(ctx, pathMeals, q, &data); err != nil {
		return model.Page[model.Meal]{}, err
	}
	return decodePage[model.Meal](data)
}

// Get fetches one meal by ID.
func (m *MealsAPI) Get(ctx context.Context, id string) (model.Meal, error) {
	if id == "" {
		return model.Meal{}, apperrors.Validation("meal ID is required")
	}
	var meal model.Meal
	err := m.client.Get(ctx, pathMeals+"/"+url.PathEscape(id), nil, &meal)
	return meal, err
}

// Detail fetches the full meal detail (with the denormalized ingredient
// snapshots) from the legacy detail route.
func (m *MealsAPI) Detail(ctx context.Context, id string) (model.Meal, error) {
	if id == "" {
		return model.Meal{}, apperrors.Validation("meal ID is required")
	}
	var meal model.Meal
	err := m.client.Get(ctx, pathMealDetail+"/"+url.PathEscape(id), nil, &meal)
	return meal, err
}

// Create creates a meal.
func (m *MealsAPI) Create(ctx context.Context, input model.CreateMealInput) (model.Meal, error) {
	var meal model.Meal
	err := m.client.Post(ctx, pathMeals, input, &meal)
	return meal, err
}

// Update updates a meal.
func (m *MealsAPI) Update(ctx context.Context, id string, input model.UpdateMealInput) (model.Meal, error) {
	if id == "" {
		return model.Meal{}, apperrors.Validation("meal ID is required")
	}
	var meal model.Meal
	err := m.client.Put(ctx, pathMeals+"/"+url.PathEscape(id), input, &meal)
	return meal, err
}

// Delete removes a meal.
func (m *MealsAPI) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("meal ID is required")
	}
	return m.client.Delete(ctx, pathMeals+"/"+url.PathEscape(id), nil)
}

// UploadImage attaches an image to a meal via a multipart upload.
func (m *MealsAPI) UploadImage(ctx context.Context, id string, file UploadFile) (model.Meal, error) {
	if id == "" {
		return model.Meal{}, apperrors.Validation("meal ID is required")
	}
	var meal model.Meal
	err := m.client.UploadFiles(ctx, pathMeals+"/"+url.PathEscape(id)+"/image", MultipartBody{Files: []UploadFile{file}}, &meal)
	return meal, err
}
