// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/alchemorsel/breadbook/internal/domain/recipe"
)

// RecipeStore persists each signed-in user's recipe set. Standard
// recipes never pass through it. The storage key is derived
// deterministically from the user id so two users' sets cannot collide;
// writes are last-write-wins with no transactional guarantees beyond a
// single SaveSet call.
type RecipeStore interface {
	// LoadSet returns the user's recipes in saved order. A user with no
	// saved recipes gets an empty set, not an error.
	LoadSet(ctx context.Context, userID string) ([]recipe.Recipe, error)

	// SaveSet replaces the user's entire recipe set. Mutations always
	// re-persist the full set; there is no incremental diffing.
	SaveSet(ctx context.Context, userID string, recipes []recipe.Recipe) error
}

// AIService is the external model the importer and nutrition panel call.
// Both operations are single-shot from the application's point of view:
// no retries, no caching, no coalescing of concurrent requests.
type AIService interface {
	ParseRecipe(ctx context.Context, text string) (*ParsedRecipe, error)
	EstimateNutrition(ctx context.Context, req NutritionRequest) (*NutritionInfo, error)
}

// ParsedRecipe is the model's structured reading of free-form recipe
// text. It has no id and no standard flag; the application assigns
// those.
type ParsedRecipe struct {
	Name            string
	Description     string
	TotalFlourGrams float64
	Ingredients     []ParsedIngredient
}

// ParsedIngredient is one parsed line item.
type ParsedIngredient struct {
	Name       string
	Percentage float64
}

// NutritionRequest frames a nutrition estimate: absolute baked weights
// per ingredient plus the serving size the answer should be stated for.
type NutritionRequest struct {
	RecipeName       string
	Ingredients      []IngredientWeight
	ServingSizeGrams float64
}

// IngredientWeight is an ingredient with its post-bake gram weight.
type IngredientWeight struct {
	Name  string
	Grams float64
}

// NutritionInfo is the model's estimate for one serving.
type NutritionInfo struct {
	Calories          float64
	ProteinGrams      float64
	FatGrams          float64
	CarbohydrateGrams float64
	FiberGrams        float64
}
