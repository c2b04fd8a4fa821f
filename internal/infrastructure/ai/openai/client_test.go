package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alchemorsel/breadbook/internal/infrastructure/config"
	"github.com/alchemorsel/breadbook/internal/ports/outbound"
	apperrors "github.com/alchemorsel/breadbook/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.AIConfig{
		BaseURL:     server.URL,
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		MaxTokens:   2000,
		Temperature: 0.1,
		Timeout:     5 * time.Second,
	}, zap.NewNop(), nil)

	return client, server
}

func completionWith(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := chatCompletionResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestParseRecipe(t *testing.T) {
	t.Run("WellFormedResponse_IsParsed", func(t *testing.T) {
		body := `{"name":"Country Loaf","description":"Rustic white","total_flour_grams":1000,` +
			`"ingredients":[{"name":"White Flour","percentage":90},{"name":"Whole Wheat Flour","percentage":10},` +
			`{"name":"Water","percentage":75},{"name":"Salt","percentage":2}]}`
		client, _ := newTestClient(t, completionWith(t, body))

		parsed, err := client.ParseRecipe(context.Background(), "my grandmother's loaf...")

		require.NoError(t, err)
		assert.Equal(t, "Country Loaf", parsed.Name)
		assert.InDelta(t, 1000, parsed.TotalFlourGrams, 1e-9)
		require.Len(t, parsed.Ingredients, 4)
		assert.Equal(t, "Water", parsed.Ingredients[2].Name)
		assert.InDelta(t, 75, parsed.Ingredients[2].Percentage, 1e-9)
	})

	t.Run("ProseWrappedJSON_IsExtracted", func(t *testing.T) {
		body := "Here is the recipe:\n```json\n" +
			`{"name":"Loaf","total_flour_grams":500,"ingredients":[{"name":"White Flour","percentage":100}]}` +
			"\n```\nEnjoy!"
		client, _ := newTestClient(t, completionWith(t, body))

		parsed, err := client.ParseRecipe(context.Background(), "text")

		require.NoError(t, err)
		assert.Equal(t, "Loaf", parsed.Name)
	})

	t.Run("EmptyIngredientList_IsAccepted", func(t *testing.T) {
		body := `{"name":"Plain","total_flour_grams":500,"ingredients":[]}`
		client, _ := newTestClient(t, completionWith(t, body))

		parsed, err := client.ParseRecipe(context.Background(), "text")

		require.NoError(t, err)
		assert.Equal(t, "Plain", parsed.Name)
		assert.Empty(t, parsed.Ingredients)
	})

	t.Run("MissingName_FailsSchemaCheck", func(t *testing.T) {
		body := `{"name":"","total_flour_grams":500,"ingredients":[{"name":"White Flour","percentage":100}]}`
		client, _ := newTestClient(t, completionWith(t, body))

		_, err := client.ParseRecipe(context.Background(), "text")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	t.Run("ZeroFlour_FailsSchemaCheck", func(t *testing.T) {
		body := `{"name":"Loaf","total_flour_grams":0,"ingredients":[{"name":"White Flour","percentage":100}]}`
		client, _ := newTestClient(t, completionWith(t, body))

		_, err := client.ParseRecipe(context.Background(), "text")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	t.Run("NoJSONInResponse_IsParseError", func(t *testing.T) {
		client, _ := newTestClient(t, completionWith(t, "Sorry, I cannot do that."))

		_, err := client.ParseRecipe(context.Background(), "text")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeParseFailed))
	})

	t.Run("UpstreamError_IsParseError", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})

		_, err := client.ParseRecipe(context.Background(), "text")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeParseFailed))
	})

	t.Run("SystemPrompt_ListsCatalogAndFlourRule", func(t *testing.T) {
		prompt := parseSystemPrompt()

		assert.Contains(t, prompt, "White Flour")
		assert.Contains(t, prompt, "Sourdough Starter")
		assert.Contains(t, prompt, "sum to exactly 100")
		assert.Contains(t, prompt, "omit ingredients whose percentage would be zero")
	})
}

func TestEstimateNutrition(t *testing.T) {
	req := outbound.NutritionRequest{
		RecipeName:       "Country Loaf",
		ServingSizeGrams: 100,
		Ingredients: []outbound.IngredientWeight{
			{Name: "White Flour", Grams: 1000},
			{Name: "Water", Grams: 600},
			{Name: "Salt", Grams: 20},
		},
	}

	t.Run("WellFormedResponse_IsReturned", func(t *testing.T) {
		body := `{"calories":245,"protein_g":8.5,"fat_g":1.2,"carbs_g":49.0,"fiber_g":2.8}`
		client, _ := newTestClient(t, completionWith(t, body))

		info, err := client.EstimateNutrition(context.Background(), req)

		require.NoError(t, err)
		assert.InDelta(t, 245, info.Calories, 1e-9)
		assert.InDelta(t, 8.5, info.ProteinGrams, 1e-9)
		assert.InDelta(t, 2.8, info.FiberGrams, 1e-9)
	})

	t.Run("MissingCalories_FailsSchemaCheck", func(t *testing.T) {
		body := `{"protein_g":8.5,"fat_g":1.2,"carbs_g":49.0,"fiber_g":2.8}`
		client, _ := newTestClient(t, completionWith(t, body))

		_, err := client.EstimateNutrition(context.Background(), req)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNutritionFailed))
	})

	t.Run("ZeroCalories_IsNotTreatedAsMissing", func(t *testing.T) {
		body := `{"calories":0,"protein_g":0,"fat_g":0,"carbs_g":0,"fiber_g":0}`
		client, _ := newTestClient(t, completionWith(t, body))

		info, err := client.EstimateNutrition(context.Background(), req)

		require.NoError(t, err)
		assert.Zero(t, info.Calories)
	})

	t.Run("NegativeCalories_FailsSchemaCheck", func(t *testing.T) {
		body := `{"calories":-10,"protein_g":8.5,"fat_g":1.2,"carbs_g":49.0,"fiber_g":2.8}`
		client, _ := newTestClient(t, completionWith(t, body))

		_, err := client.EstimateNutrition(context.Background(), req)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNutritionFailed))
	})

	t.Run("UpstreamError_IsNutritionError", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		})

		_, err := client.EstimateNutrition(context.Background(), req)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNutritionFailed))
	})

	t.Run("UserPrompt_CarriesWeightsAndServing", func(t *testing.T) {
		prompt := nutritionUserPrompt(req)

		assert.Contains(t, prompt, "Country Loaf")
		assert.Contains(t, prompt, "Serving size: 100 g")
		assert.Contains(t, prompt, "Water: 600.0 g")
	})
}
