package oracle

// SearchRequest is the body of POST /api/recipes/search. MaxTime and
// Diet are omitted when unset; the backend treats them as "no filter".
type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
	MaxTime     int      `json:"maxTime,omitempty"`
	Diet        string   `json:"diet,omitempty"`
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
}

// SearchResponse is the body returned by the search endpoint.
type SearchResponse struct {
	Recipes      []RecipeSummary `json:"recipes"`
	TotalResults int             `json:"total_results"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
}

// RecipeSummary is one entry of a search result. PantryCoverage is the
// fraction (0-1) of the recipe's ingredients already in the user's
// collection, computed server-side.
type RecipeSummary struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	PantryCoverage     float64   `json:"pantry_coverage"`
	MissingIngredients []string  `json:"missing_ingredients"`
	Ingredients        []string  `json:"ingredients"`
	TimeMinutes        int       `json:"time_minutes"`
	Servings           int       `json:"servings"`
	Nutrition          Nutrition `json:"nutrition"`
}

// Recipe is the full record returned by GET /api/recipes/{id}.
type Recipe struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	TimeMinutes int       `json:"time_minutes"`
	Servings    int       `json:"servings"`
	Nutrition   Nutrition `json:"nutrition"`
	Tags        []string  `json:"tags,omitempty"`
}

// Nutrition mirrors the backend's per-recipe nutrition facts.
type Nutrition struct {
	Calories     float64 `json:"calories"`
	Fat          float64 `json:"fat"`
	Sugar        float64 `json:"sugar"`
	Sodium       float64 `json:"sodium"`
	Protein      float64 `json:"protein"`
	SaturatedFat float64 `json:"saturated_fat"`
	Carbs        float64 `json:"carbs"`
}

// ExtractionResult is what the OCR endpoint returns for a scanned
// image. Ingredients are unioned into the active collection; the rest
// is display-only.
type ExtractionResult struct {
	Ingredients      []string `json:"ingredients"`
	RawText          string   `json:"raw_text"`
	Confidence       float64  `json:"confidence"`
	DetectedLanguage string   `json:"language_detected"`
}

// MetricsSummary aggregates usage counts and averages over the last N
// days, with an indianization breakdown by region.
type MetricsSummary struct {
	PeriodDays            int                `json:"period_days"`
	TotalSearches         int                `json:"total_searches"`
	TotalIndianizations   int                `json:"total_indianizations"`
	TotalOCRScans         int                `json:"total_ocr_scans"`
	TotalFeedback         int                `json:"total_feedback"`
	AvgSearchTimeMs       float64            `json:"avg_search_time_ms"`
	AvgResultsPerSearch   float64            `json:"avg_results_per_search"`
	AvgTopCoverage        float64            `json:"avg_top_coverage"`
	IndianizationByRegion map[string]int     `json:"indianization_by_region"`
	AvgOCRConfidence      float64            `json:"avg_ocr_confidence,omitempty"`
	FeedbackByType        map[string]float64 `json:"feedback_by_type,omitempty"`
}

// TimingStats carries timing percentiles for one operation class.
type TimingStats struct {
	AvgTimeMs float64 `json:"avg_time_ms"`
	P95TimeMs float64 `json:"p95_time_ms,omitempty"`
	P99TimeMs float64 `json:"p99_time_ms,omitempty"`
}

// MetricsPerformance is the response of GET /api/metrics/performance.
type MetricsPerformance struct {
	Search TimingStats `json:"search_performance"`
	OCR    struct {
		AvgTimeMs     float64 `json:"avg_time_ms"`
		AvgConfidence float64 `json:"avg_confidence"`
		SuccessRate   float64 `json:"success_rate"`
	} `json:"ocr_performance"`
	Nutrition struct {
		AvgTimeMs      float64 `json:"avg_time_ms"`
		AvgHealthScore float64 `json:"avg_health_score"`
	} `json:"nutrition_performance"`
}

// MetricsSatisfaction is the response of GET /api/metrics/satisfaction.
type MetricsSatisfaction struct {
	OverallSatisfaction float64            `json:"overall_satisfaction"`
	ByCategory          map[string]float64 `json:"by_category"`
	TotalFeedbackCount  int                `json:"total_feedback_count"`
	RatingDistribution  map[string]int     `json:"rating_distribution,omitempty"`
}

// DashboardMetrics is the combined record the analytics view renders.
// It exists only when all three metrics endpoints succeed.
type DashboardMetrics struct {
	Summary      MetricsSummary      `json:"summary"`
	Performance  MetricsPerformance  `json:"performance"`
	Satisfaction MetricsSatisfaction `json:"satisfaction"`
}

// Feedback is the body of POST /api/metrics/feedback.
type Feedback struct {
	RecipeID     int    `json:"recipe_id"`
	FeedbackType string `json:"feedback_type"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
}

// NutritionReport is the response of POST /api/nutrition/calculate.
type NutritionReport struct {
	Total            Nutrition          `json:"total"`
	PerServing       Nutrition          `json:"per_serving"`
	MacroPercentages map[string]float64 `json:"macro_percentages"`
	HealthScore      float64            `json:"health_score"`
}

// IndianizedRecipe is the response of POST /api/indianize: the recipe
// rewritten server-side for a regional Indian cuisine.
type IndianizedRecipe struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Region        string            `json:"region"`
	Ingredients   []string          `json:"ingredients"`
	Steps         []string          `json:"steps"`
	Substitutions map[string]string `json:"substitutions,omitempty"`
}

// RegionalInfo describes one Indian region's cuisine.
type RegionalInfo struct {
	Region          string   `json:"region"`
	Description     string   `json:"description"`
	KeyIngredients  []string `json:"key_ingredients,omitempty"`
	SignatureDishes []string `json:"signature_dishes,omitempty"`
}
