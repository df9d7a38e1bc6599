// Package oracle is the HTTP client for the remote Pantry Oracle API.
// All recipe search, OCR, nutrition, and metrics computation happens on
// the remote side; this package only issues requests and decodes JSON.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/krisha-oswal/pantry-oracle/internal/logger"
)

// ErrRecipeNotFound is returned when the backend reports 404 for a
// recipe ID. Callers surface it as a uniform "Recipe not found".
var ErrRecipeNotFound = errors.New("recipe not found")

// Client talks to the Pantry Oracle backend. The base URL is injected
// so tests can point it at a local httptest server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewClient creates a client for the backend at baseURL. A zero
// timeout disables the client-side timeout; callers still control
// per-request deadlines through the context.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        log,
	}
}

// SearchRecipes performs a pantry-based recipe search. A response with
// no recipes field decodes as an empty list, which is a valid result.
func (c *Client) SearchRecipes(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.postJSON(ctx, "/api/recipes/search", req, &out); err != nil {
		return nil, err
	}
	if out.Recipes == nil {
		out.Recipes = []RecipeSummary{}
	}
	return &out, nil
}

// GetRecipe fetches the full record for one recipe.
func (c *Client) GetRecipe(ctx context.Context, id int) (*Recipe, error) {
	var out Recipe
	err := c.getJSON(ctx, "/api/recipes/"+strconv.Itoa(id), nil, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &out, nil
}

// ScanImage uploads an image to the OCR endpoint and returns the
// extracted ingredients. The caller is responsible for validating the
// file type and size before the upload.
func (c *Client) ScanImage(ctx context.Context, filename, contentType string, data []byte, language string) (*ExtractionResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return nil, fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ocr/scan", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out ExtractionResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.Ingredients == nil {
		out.Ingredients = []string{}
	}
	return &out, nil
}

// Health checks the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, nil)
}

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// errorBody is the backend's uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(reqBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.log.Debug("%s %s", req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil {
			_ = json.Unmarshal(body, &eb)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: eb.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
