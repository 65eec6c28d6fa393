//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

import "time"

// MealStatus represents the publication state of a meal.
type MealStatus string

const (
	MealStatusDraft     MealStatus = "draft"
	MealStatusPublished MealStatus = "published"
	MealStatusArchived  MealStatus = "archived"
)

// Valid returns true if the meal status is a known value.
func (s MealStatus) Valid() bool {
	switch s {
	case MealStatusDraft, MealStatusPublished, MealStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the meal status.
func (s MealStatus) String() string { return string(s) }

// MealIngredient is a read-only denormalized ingredient snapshot inside a
// meal detail. The client never enforces referential integrity between a
// meal and its ingredients; the backend delivers the join.
type MealIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// Meal is a meal as delivered by the meal endpoints.
type Meal struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	DietType    string           `json:"dietType,omitempty"`
	Category    string           `json:"category,omitempty"`
	Calories    float64          `json:"calories"`
	Protein     float64          `json:"protein"`
	Carbs       float64          `json:"carbs"`
	Fat         float64          `json:"fat"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Status      MealStatus       `json:"status"`
	Ingredients []MealIngredient `json:"ingredients,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CreateMealInput carries the fields accepted when creating a meal.
type CreateMealInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	DietType    string           `json:"dietType,omitempty"`
	Category    string           `json:"category,omitempty"`
	Calories    float64          `json:"calories"`
	Protein     float64          `json:"protein"`
	Carbs       float64          `json:"carbs"`
	Fat         float64          `json:"fat"`
	Status      MealStatus       `json:"status"`
	Ingredients []MealIngredient `json:"ingredients,omitempty"`
}

// UpdateMealInput carries the mutable meal fields. Nil pointers mean
// "leave unchanged".
type UpdateMealInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DietType    *string          `json:"dietType,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Calories    *float64         `json:"calories,omitempty"`
	Protein     *float64         `json:"protein,omitempty"`
	Carbs       *float64         `json:"carbs,omitempty"`
	Fat         *float64         `json:"fat,omitempty"`
	Status      *MealStatus      `json:"status,omitempty"`
	Ingredients []MealIngredient `json:"ingredients,omitempty"`
}

// MealListOptions groups list parameters for the meal listing.
type MealListOptions struct {
	ListOptions
	// Status filters by publication state when non-nil.
	Status *MealStatus
	// DietType filters by diet type when non-empty.
	DietType string
	// Category filters by category when non-empty.
	Category string
}
