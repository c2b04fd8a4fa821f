// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alchemorsel/breadbook/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/breadbook/internal/ports/inbound"
	"github.com/alchemorsel/breadbook/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	recipeService inbound.RecipeService,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		recipeService: recipeService,
		logger:        logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *APIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	recipes, err := h.recipeService.ListRecipes(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipes,
	})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *APIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	recipeID := chi.URLParam(r, "id")

	recipe, err := h.recipeService.GetRecipe(r.Context(), userID, recipeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// SaveRecipe handles POST /api/v1/recipes
func (h *APIHandlers) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var cmd inbound.SaveRecipeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid request body"))
		return
	}

	created := cmd.ID == ""
	recipe, err := h.recipeService.SaveRecipe(r.Context(), userID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, APIResponse{
		Success: true,
		Data:    recipe,
		Message: "Recipe saved",
	})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *APIHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	recipeID := chi.URLParam(r, "id")

	if err := h.recipeService.DeleteRecipe(r.Context(), userID, recipeID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Recipe deleted",
	})
}

// ScaleRecipe handles POST /api/v1/recipes/scale
func (h *APIHandlers) ScaleRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.ScaleRecipeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid request body"))
		return
	}

	recipe, err := h.recipeService.ScaleRecipe(cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// importRequest is the body for POST /api/v1/ai/parse-recipe.
type importRequest struct {
	Text string `json:"text"`
}

// ImportRecipe handles POST /api/v1/ai/parse-recipe
func (h *APIHandlers) ImportRecipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid request body"))
		return
	}

	recipe, err := h.recipeService.ImportRecipe(r.Context(), userID, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    recipe,
		Message: "Recipe imported",
	})
}

// EstimateNutrition handles POST /api/v1/ai/nutrition
func (h *APIHandlers) EstimateNutrition(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.NutritionCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid request body"))
		return
	}

	nutrition, err := h.recipeService.EstimateNutrition(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    nutrition,
	})
}

// writeError maps an error to its HTTP status and envelope. Internal
// detail goes to the log; the client sees the user-facing message only.
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(appErr),
		)
	}

	h.writeJSON(w, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   string(appErr.Code),
		Message: appErr.Message,
	})
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
