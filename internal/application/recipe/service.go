// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"fmt"

	"github.com/alchemorsel/breadbook/internal/domain/recipe"
	"github.com/alchemorsel/breadbook/internal/ports/inbound"
	"github.com/alchemorsel/breadbook/internal/ports/outbound"
	"github.com/alchemorsel/breadbook/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bakeLossFactor models evaporation during the bake: 20% of water
// weight is deducted before a nutrition request is framed.
const bakeLossFactor = 0.20

// RecipeService implements the recipe use cases
type RecipeService struct {
	store  outbound.RecipeStore
	ai     outbound.AIService
	logger *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	store outbound.RecipeStore,
	ai outbound.AIService,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		store:  store,
		ai:     ai,
		logger: logger.Named("recipe-service"),
	}
}

// ListRecipes returns the standard recipes followed by the signed-in
// user's saved set. Anonymous callers see only the standards.
func (s *RecipeService) ListRecipes(ctx context.Context, userID string) ([]inbound.RecipeDTO, error) {
	all := recipe.StandardRecipes()

	if userID != "" {
		userSet, err := s.store.LoadSet(ctx, userID)
		if err != nil {
			return nil, errors.NewDatabaseError("load recipe set", err)
		}
		all = append(all, userSet...)
	}

	dtos := make([]inbound.RecipeDTO, len(all))
	for i, r := range all {
		dtos[i] = inbound.ToRecipeDTO(r)
	}
	return dtos, nil
}

// GetRecipe returns one recipe by id, searching standards first.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID string) (*inbound.RecipeDTO, error) {
	for _, r := range recipe.StandardRecipes() {
		if r.ID == recipeID {
			dto := inbound.ToRecipeDTO(r)
			return &dto, nil
		}
	}

	if userID != "" {
		userSet, err := s.store.LoadSet(ctx, userID)
		if err != nil {
			return nil, errors.NewDatabaseError("load recipe set", err)
		}
		for _, r := range userSet {
			if r.ID == recipeID {
				dto := inbound.ToRecipeDTO(r)
				return &dto, nil
			}
		}
	}

	return nil, errors.NewRecipeNotFoundError(recipeID)
}

// SaveRecipe validates and persists an edited or new recipe, then
// re-persists the user's full set. Anonymous saves are rejected with a
// sign-in prompt; standard recipes are immutable.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID string, cmd inbound.SaveRecipeCommand) (*inbound.RecipeDTO, error) {
	if userID == "" {
		return nil, errors.NewUnauthorizedError("Sign in to save recipes")
	}
	if recipe.IsStandardID(cmd.ID) {
		return nil, errors.NewStandardRecipeError()
	}

	entity, err := commandToRecipe(cmd)
	if err != nil {
		return nil, err
	}
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}

	userSet, err := s.store.LoadSet(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load recipe set", err)
	}

	replaced := false
	for i, existing := range userSet {
		if existing.ID == entity.ID {
			userSet[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		userSet = append(userSet, entity)
	}

	if err := s.store.SaveSet(ctx, userID, userSet); err != nil {
		return nil, errors.NewDatabaseError("save recipe set", err)
	}

	s.logger.Info("recipe saved",
		zap.String("recipe_id", entity.ID),
		zap.String("name", entity.Name),
		zap.Bool("created", !replaced),
	)

	dto := inbound.ToRecipeDTO(entity)
	return &dto, nil
}

// DeleteRecipe removes a recipe from the user's set. Deleting a
// standard recipe or an absent id fails without mutating the persisted
// set.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	if userID == "" {
		return errors.NewUnauthorizedError("Sign in to delete recipes")
	}
	if recipe.IsStandardID(recipeID) {
		return errors.NewStandardRecipeError()
	}

	userSet, err := s.store.LoadSet(ctx, userID)
	if err != nil {
		return errors.NewDatabaseError("load recipe set", err)
	}

	idx := -1
	for i, r := range userSet {
		if r.ID == recipeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NewRecipeNotFoundError(recipeID)
	}

	userSet = append(userSet[:idx], userSet[idx+1:]...)
	if err := s.store.SaveSet(ctx, userID, userSet); err != nil {
		return errors.NewDatabaseError("save recipe set", err)
	}

	s.logger.Info("recipe deleted", zap.String("recipe_id", recipeID))
	return nil
}

// ImportRecipe parses free text through the AI service, applies the
// validation contract to the result, and persists the recipe for
// signed-in users. Anonymous callers get a transient recipe back.
func (s *RecipeService) ImportRecipe(ctx context.Context, userID, text string) (*inbound.RecipeDTO, error) {
	if text == "" {
		return nil, errors.NewBadRequestError("Recipe text is required")
	}

	parsed, err := s.ai.ParseRecipe(ctx, text)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewParseError(err)
	}

	entity, err := parsedToRecipe(parsed)
	if err != nil {
		s.logger.Warn("rejected parsed recipe", zap.Error(err))
		return nil, err
	}
	entity.ID = uuid.NewString()

	if userID == "" {
		dto := inbound.ToRecipeDTO(entity)
		return &dto, nil
	}

	userSet, err := s.store.LoadSet(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load recipe set", err)
	}
	userSet = append(userSet, entity)
	if err := s.store.SaveSet(ctx, userID, userSet); err != nil {
		return nil, errors.NewDatabaseError("save recipe set", err)
	}

	s.logger.Info("recipe imported",
		zap.String("recipe_id", entity.ID),
		zap.String("name", entity.Name),
		zap.Int("ingredients", len(entity.Ingredients)),
	)

	dto := inbound.ToRecipeDTO(entity)
	return &dto, nil
}

// EstimateNutrition frames a nutrition request from the recipe as shown
// in the editor. Water weight is reduced by the bake loss factor before
// the request goes out.
func (s *RecipeService) EstimateNutrition(ctx context.Context, cmd inbound.NutritionCommand) (*inbound.NutritionDTO, error) {
	if cmd.ServingSizeGrams <= 0 {
		return nil, errors.NewBadRequestError("Serving size must be positive")
	}

	entity, err := commandToRecipe(cmd.Recipe)
	if err != nil {
		return nil, err
	}

	req := outbound.NutritionRequest{
		RecipeName:       entity.Name,
		ServingSizeGrams: cmd.ServingSizeGrams,
	}
	for _, ing := range entity.Ingredients {
		grams := recipe.IngredientGrams(entity, ing)
		if grams <= 0 {
			continue
		}
		if ing.Name == recipe.IngredientWater {
			grams *= 1 - bakeLossFactor
		}
		req.Ingredients = append(req.Ingredients, outbound.IngredientWeight{
			Name:  ing.Name,
			Grams: grams,
		})
	}

	info, err := s.ai.EstimateNutrition(ctx, req)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewNutritionError(err)
	}

	return &inbound.NutritionDTO{
		ServingSizeGrams:  cmd.ServingSizeGrams,
		Calories:          info.Calories,
		ProteinGrams:      info.ProteinGrams,
		FatGrams:          info.FatGrams,
		CarbohydrateGrams: info.CarbohydrateGrams,
		FiberGrams:        info.FiberGrams,
	}, nil
}

// ScaleRecipe is a pure preview: no persistence, no authorization.
func (s *RecipeService) ScaleRecipe(cmd inbound.ScaleRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := commandToRecipe(cmd.Recipe)
	if err != nil {
		return nil, err
	}

	scaled := recipe.RescaleToDoughWeight(entity, cmd.TargetDoughWeightGrams)
	dto := inbound.ToRecipeDTO(scaled)
	return &dto, nil
}

// commandToRecipe builds a domain recipe from a submitted command,
// enforcing the same contract as the AI validation path: non-empty
// name, positive flour weight, catalog-known ingredients.
func commandToRecipe(cmd inbound.SaveRecipeCommand) (recipe.Recipe, error) {
	entity := recipe.Recipe{
		ID:              cmd.ID,
		Name:            cmd.Name,
		Description:     cmd.Description,
		TotalFlourGrams: cmd.TotalFlourGrams,
		Ingredients:     make([]recipe.Ingredient, 0, len(cmd.Ingredients)),
	}

	if entity.Name == "" {
		return recipe.Recipe{}, errors.NewValidationError("recipe name must not be empty")
	}
	if entity.TotalFlourGrams <= 0 {
		return recipe.Recipe{}, errors.NewValidationError("total flour weight must be a positive number")
	}
	for _, in := range cmd.Ingredients {
		ing, err := recipe.NewIngredient(in.Name, in.Percentage)
		if err != nil {
			return recipe.Recipe{}, errors.NewValidationError(
				fmt.Sprintf("unknown ingredient %q", in.Name))
		}
		entity.Ingredients = append(entity.Ingredients, ing)
	}
	return entity, nil
}

// parsedToRecipe applies the validation contract to AI adapter output.
// Any violation is a validation failure; nothing is silently coerced.
func parsedToRecipe(p *outbound.ParsedRecipe) (recipe.Recipe, error) {
	if p.Name == "" {
		return recipe.Recipe{}, errors.NewValidationError("parsed recipe has an empty name")
	}
	if p.TotalFlourGrams <= 0 {
		return recipe.Recipe{}, errors.NewValidationError("parsed recipe has a non-positive flour weight")
	}

	entity := recipe.Recipe{
		Name:            p.Name,
		Description:     p.Description,
		TotalFlourGrams: p.TotalFlourGrams,
		Ingredients:     make([]recipe.Ingredient, 0, len(p.Ingredients)),
	}
	for _, in := range p.Ingredients {
		if in.Percentage < 0 {
			return recipe.Recipe{}, errors.NewValidationError(
				fmt.Sprintf("ingredient %q has a negative percentage", in.Name))
		}
		ing, err := recipe.NewIngredient(in.Name, in.Percentage)
		if err != nil {
			return recipe.Recipe{}, errors.NewValidationError(
				fmt.Sprintf("parsed recipe names unknown ingredient %q", in.Name))
		}
		entity.Ingredients = append(entity.Ingredients, ing)
	}
	return entity, nil
}
