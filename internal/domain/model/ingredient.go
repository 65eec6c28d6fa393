//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

import "time"

// Ingredient is an ingredient as delivered by the admin ingredient
// endpoints. Nutrition values are per 100 units of the base unit.
type Ingredient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Unit      string    `json:"unit"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateIngredientInput carries the fields accepted when creating an
// ingredient.
type CreateIngredientInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// UpdateIngredientInput carries the mutable ingredient fields. Nil pointers
// mean "leave unchanged".
type UpdateIngredientInput struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
}

// IngredientListOptions groups list parameters for the ingredient listing.
type IngredientListOptions struct {
	ListOptions
	// Category filters by category when non-empty.
	Category string
}
