package pantry

import (
	"sync"
	"time"

	"github.com/krisha-oswal/pantry-oracle/internal/oracle"
)

// Session is one user's view state: their ingredient collection, the
// active filters, and the idle -> loading -> success|error cycle of the
// recipe search flow. All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id          string
	ingredients *IngredientSet
	filters     Filters

	// Search view state.
	recipes         []oracle.RecipeSummary
	usedIngredients []string
	lastError       string
	inFlight        bool
	attempted       bool

	// seq is the token of the most recently issued search. A completion
	// carrying an older token arrived after a newer search started and
	// is discarded, so a rapid re-submission can never be overwritten
	// by a stale response.
	seq uint64

	touched time.Time
}

// NewSession creates an empty session with default filters.
func NewSession(id string) *Session {
	return &Session{
		id:          id,
		ingredients: NewIngredientSet(),
		filters:     DefaultFilters(),
		touched:     time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// AddIngredient adds a name to the collection. Reports whether the
// collection changed.
func (s *Session) AddIngredient(raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.ingredients.Add(raw)
}

// RemoveIngredient removes a name from the collection.
func (s *Session) RemoveIngredient(raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.ingredients.Remove(raw)
}

// MergeExtracted unions scanned ingredient names into the collection
// and returns how many were new.
func (s *Session) MergeExtracted(names []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.ingredients.MergeExtracted(names)
}

// Ingredients returns the collection in insertion order.
func (s *Session) Ingredients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingredients.Names()
}

// SetFilters replaces the active search filters. The cook time is
// clamped into range; diet validation happens at the handler layer.
func (s *Session) SetFilters(f Filters) Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	f.MaxCookTimeMinutes = ClampCookTime(f.MaxCookTimeMinutes)
	s.filters = f
	return f
}

// Filters returns the active search filters.
func (s *Session) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// BeginSearch transitions the view into the loading state: the previous
// error is cleared, the attempted flag is latched, and the sequence
// counter advances. It returns the token the eventual completion must
// present and a snapshot of the ingredients to send with the request.
func (s *Session) BeginSearch() (token uint64, ingredients []string, filters Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.seq++
	s.inFlight = true
	s.attempted = true
	s.lastError = ""
	return s.seq, s.ingredients.Names(), s.filters
}

// CompleteSearch stores a successful result. The result replaces the
// previous one wholesale, along with the snapshot of ingredients the
// request was built from. Stale tokens are ignored.
func (s *Session) CompleteSearch(token uint64, recipes []oracle.RecipeSummary, used []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return false
	}
	s.touch()
	if recipes == nil {
		recipes = []oracle.RecipeSummary{}
	}
	s.recipes = recipes
	s.usedIngredients = used
	s.lastError = ""
	s.inFlight = false
	return true
}

// FailSearch records a failed search: the error message is set and the
// result list is cleared. Stale tokens are ignored.
func (s *Session) FailSearch(token uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return false
	}
	s.touch()
	s.lastError = msg
	s.recipes = []oracle.RecipeSummary{}
	s.usedIngredients = nil
	s.inFlight = false
	return true
}

// View is a snapshot of the session state for rendering.
type View struct {
	Ingredients     []string               `json:"ingredients"`
	Filters         Filters                `json:"filters"`
	Recipes         []oracle.RecipeSummary `json:"recipes"`
	UsedIngredients []string               `json:"used_ingredients,omitempty"`
	Error           string                 `json:"error,omitempty"`
	InFlight        bool                   `json:"in_flight"`
	Attempted       bool                   `json:"attempted"`
}

// Snapshot returns a consistent copy of the session's view state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipes := s.recipes
	if recipes == nil {
		recipes = []oracle.RecipeSummary{}
	}
	return View{
		Ingredients:     s.ingredients.Names(),
		Filters:         s.filters,
		Recipes:         recipes,
		UsedIngredients: s.usedIngredients,
		Error:           s.lastError,
		InFlight:        s.inFlight,
		Attempted:       s.attempted,
	}
}

func (s *Session) touch() { s.touched = time.Now() }

// lastTouched is used by the store's expiry sweep.
func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
