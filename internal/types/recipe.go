package types

import "github.com/pageza/recipes/backend/internal/models"

// RecipeRequest is the body of create and update calls. It deliberately has
// no id, author or date: those are stamped by the server.
type RecipeRequest struct {
	Name        string   `json:"name" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Ingredients []string `json:"ingredients" validate:"notblank"`
	Directions  []string `json:"directions" validate:"notblank"`
}

// CreateRecipeResponse carries the id assigned by the store
type CreateRecipeResponse struct {
	ID int `json:"id"`
}

// ToModel copies the request fields onto a fresh recipe model
func (r *RecipeRequest) ToModel() *models.Recipe {
	return &models.Recipe{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Ingredients: append(models.StringList{}, r.Ingredients...),
		Directions:  append(models.StringList{}, r.Directions...),
	}
}
