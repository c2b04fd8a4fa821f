// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/alchemorsel/breadbook/internal/domain/recipe"
)

// RecipeService defines the use cases the presentation layer drives.
// userID is the identity-provider subject; an empty userID means an
// anonymous caller.
type RecipeService interface {
	// Queries
	ListRecipes(ctx context.Context, userID string) ([]RecipeDTO, error)
	GetRecipe(ctx context.Context, userID, recipeID string) (*RecipeDTO, error)

	// Commands
	SaveRecipe(ctx context.Context, userID string, cmd SaveRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, userID, recipeID string) error

	// AI operations
	ImportRecipe(ctx context.Context, userID, text string) (*RecipeDTO, error)
	EstimateNutrition(ctx context.Context, cmd NutritionCommand) (*NutritionDTO, error)

	// ScaleRecipe is a pure preview for the dough-weight control: it
	// returns the recipe rescaled to the target total dough weight
	// without persisting anything.
	ScaleRecipe(cmd ScaleRecipeCommand) (*RecipeDTO, error)
}

// SaveRecipeCommand carries a full edited recipe value. An empty ID
// means a new recipe; the service assigns one.
type SaveRecipeCommand struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	TotalFlourGrams float64              `json:"totalFlourGrams"`
	Ingredients     []IngredientInputDTO `json:"ingredients"`
}

// IngredientInputDTO is one submitted ingredient line.
type IngredientInputDTO struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// ScaleRecipeCommand asks for a recipe rescaled to a target dough weight.
type ScaleRecipeCommand struct {
	Recipe                SaveRecipeCommand `json:"recipe"`
	TargetDoughWeightGrams float64          `json:"targetDoughWeightGrams"`
}

// NutritionCommand asks for a nutrition estimate of a recipe as
// currently shown in the editor, saved or not.
type NutritionCommand struct {
	Recipe           SaveRecipeCommand `json:"recipe"`
	ServingSizeGrams float64           `json:"servingSizeGrams"`
}

// RecipeDTO is the recipe as the SPA consumes it, with derived gram
// values precomputed so the client never redoes percentage math.
type RecipeDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	TotalFlourGrams  float64         `json:"totalFlourGrams"`
	TotalDoughWeight float64         `json:"totalDoughWeight"`
	IsStandard       bool            `json:"isStandard"`
	Editable         bool            `json:"editable"`
	Ingredients      []IngredientDTO `json:"ingredients"`
}

// IngredientDTO is one recipe line with its derived weight.
type IngredientDTO struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
	Grams      float64 `json:"grams"`
}

// NutritionDTO is the estimate for one serving.
type NutritionDTO struct {
	ServingSizeGrams  float64 `json:"servingSizeGrams"`
	Calories          float64 `json:"calories"`
	ProteinGrams      float64 `json:"proteinGrams"`
	FatGrams          float64 `json:"fatGrams"`
	CarbohydrateGrams float64 `json:"carbohydrateGrams"`
	FiberGrams        float64 `json:"fiberGrams"`
}

// ToRecipeDTO converts a domain recipe to its transport form.
func ToRecipeDTO(r recipe.Recipe) RecipeDTO {
	dto := RecipeDTO{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		TotalFlourGrams:  r.TotalFlourGrams,
		TotalDoughWeight: recipe.TotalDoughWeight(r),
		IsStandard:       r.IsStandard,
		Editable:         r.IsEditable(),
		Ingredients:      make([]IngredientDTO, len(r.Ingredients)),
	}
	for i, ing := range r.Ingredients {
		cat, _ := recipe.CategoryOf(ing.Name)
		dto.Ingredients[i] = IngredientDTO{
			Name:       ing.Name,
			Category:   string(cat),
			Percentage: ing.Percentage,
			Grams:      recipe.IngredientGrams(r, ing),
		}
	}
	return dto
}
