package oracle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krisha-oswal/pantry-oracle/internal/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 0, logger.New(logger.LevelOff, nil))
}

func TestSearchRecipesSendsExactBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recipes": [], "total_results": 0, "page": 1, "total_pages": 0}`))
	})

	_, err := client.SearchRecipes(context.Background(), SearchRequest{
		Ingredients: []string{"tomato", "chicken", "rice"},
		MaxTime:     45,
		Diet:        "vegetarian",
		Page:        1,
		Limit:       20,
	})
	assert.NoError(t, err)

	assert.Equal(t, "/api/recipes/search", gotPath)
	assert.Equal(t, map[string]any{
		"ingredients": []any{"tomato", "chicken", "rice"},
		"maxTime":     float64(45),
		"diet":        "vegetarian",
		"page":        float64(1),
		"limit":       float64(20),
	}, gotBody)
}

func TestSearchRecipesOmitsUnsetFilters(t *testing.T) {
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"recipes": []}`))
	})

	_, err := client.SearchRecipes(context.Background(), SearchRequest{
		Ingredients: []string{"rice"},
		Page:        1,
		Limit:       20,
	})
	assert.NoError(t, err)

	assert.NotContains(t, gotBody, "maxTime")
	assert.NotContains(t, gotBody, "diet")
}

func TestSearchRecipesServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "engine exploded"}`))
	})

	resp, err := client.SearchRecipes(context.Background(), SearchRequest{Ingredients: []string{"rice"}, Page: 1, Limit: 20})
	assert.Nil(t, resp)

	var se *StatusError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "engine exploded", se.Message)
}

func TestSearchRecipesMissingRecipesFieldDefaultsToEmpty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_results": 0}`))
	})

	resp, err := client.SearchRecipes(context.Background(), SearchRequest{Ingredients: []string{"rice"}, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.NotNil(t, resp.Recipes)
	assert.Len(t, resp.Recipes, 0)
}

func TestGetRecipe(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/137739", r.URL.Path)
		w.Write([]byte(`{"id": 137739, "name": "Butter Chicken", "ingredients": ["chicken", "butter"], "steps": ["cook it"], "tags": ["indian"]}`))
	})

	recipe, err := client.GetRecipe(context.Background(), 137739)
	assert.NoError(t, err)
	assert.Equal(t, "Butter Chicken", recipe.Name)
	assert.Equal(t, []string{"chicken", "butter"}, recipe.Ingredients)
}

func TestGetRecipeNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Recipe not found"}`))
	})

	recipe, err := client.GetRecipe(context.Background(), 99)
	assert.Nil(t, recipe)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestScanImageMultipartRequest(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ocr/scan", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "pantry.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("fake image bytes"), data)
		assert.Equal(t, "eng", r.FormValue("language"))

		w.Write([]byte(`{"ingredients": ["tomato", "onion"], "raw_text": "tomato\nonion", "confidence": 0.91, "language_detected": "eng"}`))
	})

	result, err := client.ScanImage(context.Background(), "pantry.png", "image/png", []byte("fake image bytes"), "eng")
	assert.NoError(t, err)
	assert.Equal(t, []string{"tomato", "onion"}, result.Ingredients)
	assert.InDelta(t, 0.91, result.Confidence, 1e-9)
	assert.Equal(t, "eng", result.DetectedLanguage)
}

func TestScanImageServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "tesseract unavailable", "ingredients": [], "confidence": 0.0}`))
	})

	result, err := client.ScanImage(context.Background(), "pantry.png", "image/png", []byte("x"), "")
	assert.Nil(t, result)

	var se *StatusError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, "tesseract unavailable", se.Message)
}

func TestHealth(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	assert.NoError(t, client.Health(context.Background()))
}

func TestCalculateNutritionBody(t *testing.T) {
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/nutrition/calculate", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"health_score": 72.5, "per_serving": {"calories": 450}}`))
	})

	report, err := client.CalculateNutrition(context.Background(), 137739, 2)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"recipe_id": float64(137739), "servings": float64(2)}, gotBody)
	assert.InDelta(t, 72.5, report.HealthScore, 1e-9)
	assert.InDelta(t, 450, report.PerServing.Calories, 1e-9)
}

func TestIndianizeRecipeBody(t *testing.T) {
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/indianize", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"id": 31490, "region": "south"}`))
	})

	indianized, err := client.IndianizeRecipe(context.Background(), 31490, "south")
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"recipe_id": float64(31490), "region": "south"}, gotBody)
	assert.Equal(t, "south", indianized.Region)
}
