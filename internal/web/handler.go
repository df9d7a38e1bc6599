// Package web contains the gin handlers that bind user sessions to the
// remote Pantry Oracle API.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krisha-oswal/pantry-oracle/internal/logger"
	"github.com/krisha-oswal/pantry-oracle/internal/oracle"
	"github.com/krisha-oswal/pantry-oracle/internal/pantry"
)

// searchFailedMessage is the single human-readable string shown when
// the search endpoint answers with a non-success status.
const searchFailedMessage = "Failed to fetch recipes"

// sessionCookie carries the session ID between requests.
const sessionCookie = "pantry_session"

// OracleClient defines the interface for talking to the Pantry Oracle
// backend.
type OracleClient interface {
	SearchRecipes(ctx context.Context, req oracle.SearchRequest) (*oracle.SearchResponse, error)
	GetRecipe(ctx context.Context, id int) (*oracle.Recipe, error)
	ScanImage(ctx context.Context, filename, contentType string, data []byte, language string) (*oracle.ExtractionResult, error)
	FetchMetrics(ctx context.Context, days int) (*oracle.DashboardMetrics, error)
	CalculateNutrition(ctx context.Context, recipeID, servings int) (*oracle.NutritionReport, error)
	IndianizeRecipe(ctx context.Context, recipeID int, region string) (*oracle.IndianizedRecipe, error)
	RegionalInfo(ctx context.Context, region string) (*oracle.RegionalInfo, error)
	SubmitFeedback(ctx context.Context, fb oracle.Feedback) error
	Health(ctx context.Context) error
}

// SessionStore defines the interface for session lookup and creation.
type SessionStore interface {
	Create() *pantry.Session
	Get(id string) *pantry.Session
}

// Handler handles HTTP requests.
type Handler struct {
	Oracle          OracleClient
	Sessions        SessionStore
	UpstreamTimeout time.Duration
	MaxUploadBytes  int64
	Log             *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(client OracleClient, sessions SessionStore, upstreamTimeout time.Duration, maxUploadBytes int64, log *logger.Logger) *Handler {
	return &Handler{
		Oracle:          client,
		Sessions:        sessions,
		UpstreamTimeout: upstreamTimeout,
		MaxUploadBytes:  maxUploadBytes,
		Log:             log,
	}
}

// Register wires all routes onto the router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api", h.WithSession)
	api.GET("/pantry", h.GetPantry)
	api.POST("/pantry/ingredients", h.AddIngredient)
	api.DELETE("/pantry/ingredients/:name", h.RemoveIngredient)
	api.PUT("/pantry/filters", h.SetFilters)
	api.POST("/pantry/scan", h.Scan)
	api.POST("/search", h.Search)
	api.GET("/recipes/:id", h.GetRecipe)
	api.POST("/recipes/:id/nutrition", h.Nutrition)
	api.POST("/recipes/:id/indianize", h.Indianize)
	api.GET("/regions/:region", h.Region)
	api.GET("/dashboard/metrics", h.DashboardMetrics)
	api.POST("/feedback", h.Feedback)
}

// WithSession attaches the caller's session to the request, creating a
// new one (and its cookie) when no live session is found.
func (h *Handler) WithSession(c *gin.Context) {
	var sess *pantry.Session
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		sess = h.Sessions.Get(id)
	}
	if sess == nil {
		sess = h.Sessions.Create()
		c.SetCookie(sessionCookie, sess.ID(), 0, "/", "", false, true)
		h.Log.Debug("new session %s for %s", sess.ID(), c.ClientIP())
	}
	c.Set("session", sess)
	c.Next()
}

func (h *Handler) session(c *gin.Context) *pantry.Session {
	return c.MustGet("session").(*pantry.Session)
}

func (h *Handler) upstreamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.UpstreamTimeout)
}

// Healthz reports liveness and whether the backend is reachable.
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	backend := "ok"
	if err := h.Oracle.Health(ctx); err != nil {
		backend = "unreachable"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": backend})
}

// GetPantry returns the session's full view state.
func (h *Handler) GetPantry(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Snapshot())
}

// AddIngredient appends one ingredient to the collection. Blank and
// duplicate names are silently ignored, matching the view behavior of
// the input control.
func (h *Handler) AddIngredient(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess := h.session(c)
	added := sess.AddIngredient(body.Name)
	c.JSON(http.StatusOK, gin.H{"added": added, "ingredients": sess.Ingredients()})
}

// RemoveIngredient deletes one ingredient. Removing an absent name is
// an idempotent no-op.
func (h *Handler) RemoveIngredient(c *gin.Context) {
	sess := h.session(c)
	removed := sess.RemoveIngredient(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"removed": removed, "ingredients": sess.Ingredients()})
}

// SetFilters replaces the search filters. The cook time is clamped to
// [10,180]; unknown diet values are rejected.
func (h *Handler) SetFilters(c *gin.Context) {
	var body pantry.Filters
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !pantry.ValidDiet(body.DietaryPreference) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown dietary preference. Use vegetarian, vegan, or gluten-free."})
		return
	}
	if body.MaxCookTimeMinutes == 0 {
		body.MaxCookTimeMinutes = pantry.DefaultCookTimeMinutes
	}

	applied := h.session(c).SetFilters(body)
	c.JSON(http.StatusOK, gin.H{"filters": applied})
}

// Search issues one recipe search for the session's collection. The
// session must hold at least one ingredient; the search itself always
// requests the first page of twenty results.
func (h *Handler) Search(c *gin.Context) {
	sess := h.session(c)
	if len(sess.Ingredients()) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Add at least one ingredient before searching"})
		return
	}

	token, ingredients, filters := sess.BeginSearch()

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	resp, err := h.Oracle.SearchRecipes(ctx, oracle.SearchRequest{
		Ingredients: ingredients,
		MaxTime:     filters.MaxCookTimeMinutes,
		Diet:        filters.DietaryPreference,
		Page:        1,
		Limit:       20,
	})
	if err != nil {
		msg := searchFailedMessage
		var se *oracle.StatusError
		if !errors.As(err, &se) {
			// Transport or decode failure: show the failure's own
			// message rather than the HTTP-status one.
			if msg = err.Error(); msg == "" {
				msg = "Recipe search failed"
			}
		}
		h.Log.Error("search failed for session %s: %v", sess.ID(), err)
		sess.FailSearch(token, msg)
		c.JSON(http.StatusBadGateway, sess.Snapshot())
		return
	}

	applied := sess.CompleteSearch(token, resp.Recipes, ingredients)
	if !applied {
		h.Log.Debug("discarded stale search result for session %s", sess.ID())
	}
	c.JSON(http.StatusOK, gin.H{
		"view":          sess.Snapshot(),
		"total_results": resp.TotalResults,
		"total_pages":   resp.TotalPages,
	})
}

// GetRecipe fetches the detail view of one recipe. Any non-success
// answer from the backend is surfaced as the uniform not-found
// condition.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	recipe, err := h.Oracle.GetRecipe(ctx, id)
	if err != nil {
		var se *oracle.StatusError
		if errors.Is(err, oracle.ErrRecipeNotFound) || errors.As(err, &se) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.Log.Error("get recipe %d: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recipe service is unavailable"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Nutrition proxies a nutrition calculation for one recipe.
func (h *Handler) Nutrition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var body struct {
		Servings int `json:"servings"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.Servings < 1 {
		body.Servings = 1
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	report, err := h.Oracle.CalculateNutrition(ctx, id, body.Servings)
	if err != nil {
		h.Log.Error("nutrition for recipe %d: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to calculate nutrition"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Indianize proxies a regional rewrite of one recipe. The region
// defaults to north, matching the backend.
func (h *Handler) Indianize(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var body struct {
		Region string `json:"region"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.Region == "" {
		body.Region = "north"
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	indianized, err := h.Oracle.IndianizeRecipe(ctx, id, body.Region)
	if err != nil {
		h.Log.Error("indianize recipe %d: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to indianize recipe"})
		return
	}
	c.JSON(http.StatusOK, indianized)
}

// Region returns the cuisine profile of one Indian region.
func (h *Handler) Region(c *gin.Context) {
	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	info, err := h.Oracle.RegionalInfo(ctx, c.Param("region"))
	if err != nil {
		h.Log.Error("regional info %q: %v", c.Param("region"), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load regional info"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// DashboardMetrics fetches the combined analytics record. The dashboard
// is all-or-nothing: a failure in any of the three backing requests
// renders the failed-to-load branch, never a partially filled view.
func (h *Handler) DashboardMetrics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
		return
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	metrics, err := h.Oracle.FetchMetrics(ctx, days)
	if err != nil {
		h.Log.Error("metrics fetch: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Feedback validates a rating locally and forwards it to the backend.
func (h *Handler) Feedback(c *gin.Context) {
	var fb oracle.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if fb.RecipeID == 0 || fb.FeedbackType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id and feedback_type are required"})
		return
	}
	if fb.Rating < 1 || fb.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	if err := h.Oracle.SubmitFeedback(ctx, fb); err != nil {
		h.Log.Error("submit feedback: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to submit feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback submitted successfully"})
}
