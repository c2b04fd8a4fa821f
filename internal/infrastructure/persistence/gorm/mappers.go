package gorm

import (
	"github.com/alchemorsel/breadbook/internal/domain/recipe"
)

// toModel converts a domain recipe to its row form. Position fixes the
// recipe's place in the user's set.
func toModel(ownerKey string, position int, r recipe.Recipe) UserRecipeModel {
	model := UserRecipeModel{
		RecipeID:        r.ID,
		OwnerKey:        ownerKey,
		Position:        position,
		Name:            r.Name,
		Description:     r.Description,
		TotalFlourGrams: r.TotalFlourGrams,
		Ingredients:     make(IngredientList, len(r.Ingredients)),
	}
	for i, ing := range r.Ingredients {
		model.Ingredients[i] = IngredientRow{
			Name:       ing.Name,
			Percentage: ing.Percentage,
		}
	}
	return model
}

// toDomain converts a stored row back to a domain recipe. Rows only
// ever hold user recipes, so the standard flag stays false.
func toDomain(m UserRecipeModel) recipe.Recipe {
	r := recipe.Recipe{
		ID:              m.RecipeID,
		Name:            m.Name,
		Description:     m.Description,
		TotalFlourGrams: m.TotalFlourGrams,
		Ingredients:     make([]recipe.Ingredient, len(m.Ingredients)),
	}
	for i, row := range m.Ingredients {
		r.Ingredients[i] = recipe.Ingredient{
			Name:       row.Name,
			Percentage: row.Percentage,
		}
	}
	return r
}
