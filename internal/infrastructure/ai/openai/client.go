// Package openai implements the AI service port against an
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alchemorsel/breadbook/internal/domain/recipe"
	"github.com/alchemorsel/breadbook/internal/infrastructure/config"
	"github.com/alchemorsel/breadbook/internal/infrastructure/monitoring"
	"github.com/alchemorsel/breadbook/internal/ports/outbound"
	"github.com/alchemorsel/breadbook/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Client implements the AIService interface using an OpenAI-compatible API
type Client struct {
	cfg      config.AIConfig
	client   *http.Client
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	validate *validator.Validate
}

// NewClient creates a new AI client from configuration.
func NewClient(cfg config.AIConfig, logger *zap.Logger, metrics *monitoring.Metrics) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:   logger.Named("openai"),
		metrics:  metrics,
		validate: validator.New(),
	}
}

// OpenAI API structures
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// parsedRecipeResponse is the JSON shape the parse prompt demands.
type parsedRecipeResponse struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	TotalFlourGrams float64 `json:"total_flour_grams" validate:"required,gt=0"`
	Ingredients     []struct {
		Name       string  `json:"name" validate:"required"`
		Percentage float64 `json:"percentage" validate:"gte=0"`
	} `json:"ingredients" validate:"dive"`
}

// nutritionResponse is the JSON shape the nutrition prompt demands.
// Pointer fields distinguish an absent field from a legitimate zero; a
// reply missing any field fails the schema check rather than being
// coerced to zero.
type nutritionResponse struct {
	Calories          *float64 `json:"calories" validate:"required,gte=0"`
	ProteinGrams      *float64 `json:"protein_g" validate:"required,gte=0"`
	FatGrams          *float64 `json:"fat_g" validate:"required,gte=0"`
	CarbohydrateGrams *float64 `json:"carbs_g" validate:"required,gte=0"`
	FiberGrams        *float64 `json:"fiber_g" validate:"required,gte=0"`
}

// ParseRecipe turns free-form recipe text into a structured recipe in
// baker's percentages, restricted to the ingredient catalog.
func (c *Client) ParseRecipe(ctx context.Context, text string) (*outbound.ParsedRecipe, error) {
	started := time.Now()

	content, err := c.callChatCompletions(ctx, parseSystemPrompt(), "Convert this recipe:\n\n"+text)
	if err != nil {
		c.observe("parse", "error", started)
		c.logger.Error("recipe parse call failed", zap.Error(err))
		return nil, errors.NewParseError(err)
	}

	jsonStr, err := extractJSON(content)
	if err != nil {
		c.observe("parse", "error", started)
		return nil, errors.NewParseError(err)
	}

	var parsed parsedRecipeResponse
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		c.observe("parse", "error", started)
		c.logger.Error("failed to decode parse response", zap.Error(err), zap.String("response", jsonStr))
		return nil, errors.NewParseError(fmt.Errorf("decode parse response: %w", err))
	}
	if err := c.validate.Struct(parsed); err != nil {
		c.observe("parse", "invalid", started)
		return nil, errors.NewValidationError(fmt.Sprintf("parsed recipe failed schema check: %v", err))
	}

	result := &outbound.ParsedRecipe{
		Name:            parsed.Name,
		Description:     parsed.Description,
		TotalFlourGrams: parsed.TotalFlourGrams,
		Ingredients:     make([]outbound.ParsedIngredient, len(parsed.Ingredients)),
	}
	for i, ing := range parsed.Ingredients {
		result.Ingredients[i] = outbound.ParsedIngredient{
			Name:       ing.Name,
			Percentage: ing.Percentage,
		}
	}

	c.observe("parse", "ok", started)
	c.logger.Info("recipe parsed",
		zap.String("name", result.Name),
		zap.Int("ingredients", len(result.Ingredients)),
	)
	return result, nil
}

// EstimateNutrition asks the model for per-serving nutrition given
// absolute baked ingredient weights.
func (c *Client) EstimateNutrition(ctx context.Context, req outbound.NutritionRequest) (*outbound.NutritionInfo, error) {
	started := time.Now()

	content, err := c.callChatCompletions(ctx, nutritionSystemPrompt(), nutritionUserPrompt(req))
	if err != nil {
		c.observe("nutrition", "error", started)
		c.logger.Error("nutrition call failed", zap.Error(err))
		return nil, errors.NewNutritionError(err)
	}

	jsonStr, err := extractJSON(content)
	if err != nil {
		c.observe("nutrition", "error", started)
		return nil, errors.NewNutritionError(err)
	}

	var nut nutritionResponse
	if err := json.Unmarshal([]byte(jsonStr), &nut); err != nil {
		c.observe("nutrition", "error", started)
		c.logger.Error("failed to decode nutrition response", zap.Error(err), zap.String("response", jsonStr))
		return nil, errors.NewNutritionError(fmt.Errorf("decode nutrition response: %w", err))
	}
	if err := c.validate.Struct(nut); err != nil {
		c.observe("nutrition", "invalid", started)
		return nil, errors.NewNutritionError(fmt.Errorf("nutrition response failed schema check: %w", err))
	}

	c.observe("nutrition", "ok", started)
	return &outbound.NutritionInfo{
		Calories:          *nut.Calories,
		ProteinGrams:      *nut.ProteinGrams,
		FatGrams:          *nut.FatGrams,
		CarbohydrateGrams: *nut.CarbohydrateGrams,
		FiberGrams:        *nut.FiberGrams,
	}, nil
}

func (c *Client) observe(operation, status string, started time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveAI(operation, status, time.Since(started).Seconds())
	}
}

// callChatCompletions makes the actual API call.
func (c *Client) callChatCompletions(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("chat completion succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// extractJSON pulls the first JSON object out of a model response.
// Models sometimes wrap the object in prose or markdown fences.
func extractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no valid JSON found in response")
	}
	return response[start : end+1], nil
}

// parseSystemPrompt instructs the model to express the recipe in
// baker's percentages using only catalog ingredient names.
func parseSystemPrompt() string {
	names := make([]string, 0, len(recipe.Catalog()))
	for _, info := range recipe.Catalog() {
		names = append(names, info.Name)
	}

	return fmt.Sprintf(`You are a professional baker. Convert the recipe text the user provides into baker's percentage form.

Rules:
- Express every ingredient as a percentage of total flour weight. All flour ingredients together must sum to exactly 100.
- Use ONLY these ingredient names, exactly as written: %s. Map each recipe ingredient to the closest name on the list.
- Omit any ingredient you cannot map, and omit ingredients whose percentage would be zero.
- total_flour_grams is the combined weight in grams of all flour ingredients. If the text gives volumes, convert to grams first.

CRITICAL: Respond with ONLY a valid JSON object in the exact format below. No explanatory text, no markdown formatting.

{
  "name": "Recipe Name",
  "description": "One-sentence description",
  "total_flour_grams": 1000,
  "ingredients": [
    {"name": "White Flour", "percentage": 100},
    {"name": "Water", "percentage": 70},
    {"name": "Salt", "percentage": 2}
  ]
}`, strings.Join(names, ", "))
}

// nutritionSystemPrompt asks for a per-serving estimate as strict JSON.
func nutritionSystemPrompt() string {
	return `You are a nutritionist. Estimate the nutrition of one serving of baked bread from the ingredient weights the user provides. The weights are post-bake weights.

CRITICAL: Respond with ONLY a valid JSON object in the exact format below. No explanatory text, no markdown formatting.

{
  "calories": 250,
  "protein_g": 9.0,
  "fat_g": 1.5,
  "carbs_g": 50.0,
  "fiber_g": 3.0
}`
}

// nutritionUserPrompt frames the recipe's baked weights for the model.
func nutritionUserPrompt(req outbound.NutritionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s\n", req.RecipeName)
	fmt.Fprintf(&b, "Serving size: %.0f g\n", req.ServingSizeGrams)
	b.WriteString("Ingredients (baked weight):\n")
	for _, ing := range req.Ingredients {
		fmt.Fprintf(&b, "- %s: %.1f g\n", ing.Name, ing.Grams)
	}
	return b.String()
}
