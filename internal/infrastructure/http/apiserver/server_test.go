package apiserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alchemorsel/breadbook/internal/domain/recipe"
	"github.com/alchemorsel/breadbook/internal/infrastructure/config"
	"github.com/alchemorsel/breadbook/internal/infrastructure/security"
	"github.com/alchemorsel/breadbook/internal/ports/inbound"
	"github.com/alchemorsel/breadbook/pkg/errors"
	"github.com/alchemorsel/breadbook/internal/infrastructure/monitoring"
	"github.com/alchemorsel/breadbook/pkg/healthcheck"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubService returns canned answers and records the user it saw.
type stubService struct {
	lastUserID string
	recipes    []inbound.RecipeDTO
	saveErr    error
}

func (s *stubService) ListRecipes(_ context.Context, userID string) ([]inbound.RecipeDTO, error) {
	s.lastUserID = userID
	return s.recipes, nil
}

func (s *stubService) GetRecipe(_ context.Context, userID, recipeID string) (*inbound.RecipeDTO, error) {
	s.lastUserID = userID
	for i := range s.recipes {
		if s.recipes[i].ID == recipeID {
			return &s.recipes[i], nil
		}
	}
	return nil, errors.NewRecipeNotFoundError(recipeID)
}

func (s *stubService) SaveRecipe(_ context.Context, userID string, cmd inbound.SaveRecipeCommand) (*inbound.RecipeDTO, error) {
	s.lastUserID = userID
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return &inbound.RecipeDTO{ID: "new-id", Name: cmd.Name}, nil
}

func (s *stubService) DeleteRecipe(_ context.Context, userID, recipeID string) error {
	s.lastUserID = userID
	return nil
}

func (s *stubService) ImportRecipe(_ context.Context, userID, text string) (*inbound.RecipeDTO, error) {
	s.lastUserID = userID
	return &inbound.RecipeDTO{ID: "imported-id", Name: "Imported"}, nil
}

func (s *stubService) EstimateNutrition(context.Context, inbound.NutritionCommand) (*inbound.NutritionDTO, error) {
	return &inbound.NutritionDTO{Calories: 250}, nil
}

func (s *stubService) ScaleRecipe(cmd inbound.ScaleRecipeCommand) (*inbound.RecipeDTO, error) {
	return &inbound.RecipeDTO{Name: cmd.Recipe.Name, TotalDoughWeight: cmd.TargetDoughWeightGrams}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T, svc inbound.RecipeService) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Monitoring.HealthCheckPath = "/health"

	reader := security.NewTokenReader(config.AuthConfig{JWTSecret: "test-secret"}, zap.NewNop())
	health := healthcheck.New("test", zap.NewNop())
	return NewServer(cfg, zap.NewNop(), svc, reader, nil, health, nil)
}

func bearerFor(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, srv *Server, method, path, body, auth string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestServerRoutes(t *testing.T) {
	standard := inbound.ToRecipeDTO(recipe.StandardRecipes()[0])

	t.Run("HealthCheck_ReportsHealthy", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var health healthcheck.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		assert.Equal(t, healthcheck.StatusHealthy, health.Status)
	})

	t.Run("ListRecipes_AnonymousPassesEmptyUser", func(t *testing.T) {
		svc := &stubService{recipes: []inbound.RecipeDTO{standard}}
		srv := newTestServer(t, svc)

		rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/recipes", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.Empty(t, svc.lastUserID)
	})

	t.Run("ListRecipes_BearerTokenResolvesSubject", func(t *testing.T) {
		svc := &stubService{}
		srv := newTestServer(t, svc)

		rec, _ := doJSON(t, srv, http.MethodGet, "/api/v1/recipes", "", bearerFor(t, "auth0|user-7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "auth0|user-7", svc.lastUserID)
	})

	t.Run("InvalidToken_Is401", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})

		rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/recipes", "", "Bearer garbage")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, env.Success)
	})

	t.Run("SaveRecipe_AnonymousGetsSignInPrompt", func(t *testing.T) {
		svc := &stubService{saveErr: errors.NewUnauthorizedError("Sign in to save recipes")}
		srv := newTestServer(t, svc)

		rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/recipes",
			`{"name":"My Loaf","totalFlourGrams":1000}`, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", env.Error)
		assert.Equal(t, "Sign in to save recipes", env.Message)
	})

	t.Run("SaveRecipe_NewRecipeIs201", func(t *testing.T) {
		svc := &stubService{}
		srv := newTestServer(t, svc)

		rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/recipes",
			`{"name":"My Loaf","totalFlourGrams":1000}`, bearerFor(t, "user-1"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
	})

	t.Run("SaveRecipe_NonJSONContentTypeIs415", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", strings.NewReader("name=loaf"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("GetRecipe_UnknownIDIs404", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})

		rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/recipes/nope", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "RECIPE_NOT_FOUND", env.Error)
	})

	t.Run("ScaleRecipe_ReturnsScaledPreview", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})

		rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/recipes/scale",
			`{"recipe":{"name":"Loaf","totalFlourGrams":1000},"targetDoughWeightGrams":835}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var dto inbound.RecipeDTO
		require.NoError(t, json.Unmarshal(env.Data, &dto))
		assert.InDelta(t, 835, dto.TotalDoughWeight, 1e-9)
	})

	t.Run("ImportRecipe_Is201", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})

		rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/ai/parse-recipe",
			`{"text":"a loaf with flour and water"}`, "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
	})

	t.Run("RequestMetrics_AreRecordedPerRoute", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		metrics := monitoring.NewMetrics(registry)

		cfg := &config.Config{}
		cfg.App.Version = "test"
		cfg.Monitoring.HealthCheckPath = "/health"
		reader := security.NewTokenReader(config.AuthConfig{JWTSecret: "test-secret"}, zap.NewNop())
		srv := NewServer(cfg, zap.NewNop(), &stubService{}, reader, registry, healthcheck.New("test", zap.NewNop()), metrics)

		doJSON(t, srv, http.MethodGet, "/api/v1/recipes", "", "")
		doJSON(t, srv, http.MethodGet, "/api/v1/recipes", "", "")
		doJSON(t, srv, http.MethodGet, "/api/v1/recipes/nope", "", "")

		// Two routes served: one counter series each, the list route at 2.
		assert.Equal(t, 2, testutil.CollectAndCount(metrics.HTTPRequests))
		assert.Equal(t, 2, testutil.CollectAndCount(metrics.HTTPDuration))
		assert.InDelta(t, 2, testutil.ToFloat64(
			metrics.HTTPRequests.WithLabelValues("GET", "/api/v1/recipes/", "200")), 1e-9)
	})

	t.Run("Nutrition_ReturnsEstimate", func(t *testing.T) {
		srv := newTestServer(t, &stubService{})

		rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/ai/nutrition",
			`{"recipe":{"name":"Loaf","totalFlourGrams":1000},"servingSizeGrams":100}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var dto inbound.NutritionDTO
		require.NoError(t, json.Unmarshal(env.Data, &dto))
		assert.InDelta(t, 250, dto.Calories, 1e-9)
	})
}
