package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/gego-site/internal/backend"
	"github.com/AI2HU/gego-site/internal/blog"
	"github.com/AI2HU/gego-site/internal/config"
	"github.com/AI2HU/gego-site/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMetrics struct {
	metrics    *models.BackendMetricResponse
	prompts    *models.PromptsResponse
	err        error
	promptsErr error
	pingErr    error
	lastQuery  backend.Query
	lastPage   int
	lastPer    int
}

func (f *fakeMetrics) FetchMetrics(ctx context.Context, q backend.Query) (*models.BackendMetricResponse, error) {
	f.lastQuery = q
	return f.metrics, f.err
}

func (f *fakeMetrics) FetchRawMetrics(ctx context.Context, q backend.Query) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.Marshal(f.metrics)
}

func (f *fakeMetrics) FetchPrompts(ctx context.Context, q backend.Query, page, perPage int) (*models.PromptsResponse, error) {
	f.lastPage, f.lastPer = page, perPage
	if f.promptsErr != nil {
		return nil, f.promptsErr
	}
	return f.prompts, nil
}

func (f *fakeMetrics) Ping(ctx context.Context) error {
	return f.pingErr
}

type fakeSubmitter struct {
	submitted []string
	err       error
}

func (f *fakeSubmitter) Key() string      { return "site-key" }
func (f *fakeSubmitter) Endpoint() string { return "https://api.indexnow.org/indexnow" }

func (f *fakeSubmitter) Resolve(paths ...string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if strings.HasPrefix(p, "http") {
			out[i] = p
		} else {
			out[i] = "https://gego.ai" + p
		}
	}
	return out
}

func (f *fakeSubmitter) Validate(urls []string) error {
	if len(urls) == 0 {
		return errors.New("no URLs to submit")
	}
	for _, u := range urls {
		if !strings.HasPrefix(u, "https://gego.ai") {
			return errors.New("URL does not belong to host")
		}
	}
	return nil
}

func (f *fakeSubmitter) Submit(ctx context.Context, urls []string) (int, error) {
	f.submitted = urls
	if f.err != nil {
		return 500, f.err
	}
	return http.StatusAccepted, nil
}

type fakePosts struct {
	posts []*blog.Post
}

func (f fakePosts) List() ([]*blog.Post, error) { return f.posts, nil }

func (f fakePosts) Get(slug string) (*blog.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, blog.ErrPostNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, s *Server, method, target string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func sampleMetrics() *models.BackendMetricResponse {
	rank := 4.0
	return &models.BackendMetricResponse{
		AverageMentionRate: 0.62,
		AverageSentiment:   70,
		AverageRanking:     &rank,
		Citations:          12,
		MentionRateByLLM:   map[string]float64{"chatgpt": 0.7},
		CitationOverview: models.CitationOverview{
			"chatgpt": {{URL: "https://www.g2.com/acme", Percentage: 40}},
		},
	}
}

func TestAnalytics(t *testing.T) {
	fm := &fakeMetrics{metrics: sampleMetrics()}
	s := NewServer(fm, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/analytics?brand_name=Acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Acme", fm.lastQuery.BrandName)

	var d models.Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "Acme", d.Brand)
	assert.Equal(t, 62, d.MentionRate)
	assert.Equal(t, []string{"g2.com"}, d.TopSources)
	assert.Len(t, d.MentionsByLLM, 4)
	assert.Contains(t, d.Insights.Mentions, "Acme")
}

func TestAnalytics_MissingBrand(t *testing.T) {
	s := NewServer(&fakeMetrics{}, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/analytics", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "brand_name or website")
}

func TestAnalytics_BackendStatusPassThrough(t *testing.T) {
	fm := &fakeMetrics{err: &backend.StatusError{StatusCode: http.StatusNotFound, Message: "brand not tracked"}}
	s := NewServer(fm, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/analytics?website=acme.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "brand not tracked", env.Error)
}

func TestAnalytics_TransportFailure(t *testing.T) {
	fm := &fakeMetrics{err: errors.New("connection refused")}
	s := NewServer(fm, nil, nil, "")

	w, _ := do(t, s, http.MethodGet, "/api/v1/metrics?brand_name=Acme", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestMetrics_PassThrough(t *testing.T) {
	s := NewServer(&fakeMetrics{metrics: sampleMetrics()}, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/metrics?brand_name=Acme", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var m models.BackendMetricResponse
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, 0.62, m.AverageMentionRate)
}

func TestMetrics_NonJSONBackend(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer upstream.Close()

	cfg := config.DefaultConfig().Backend
	cfg.BaseURL = upstream.URL
	cfg.Timeout = 2 * time.Second
	s := NewServer(backend.New(cfg), nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/metrics?brand_name=Acme", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "failed to decode metrics")
}

func TestMetrics_NonErrorBackendStatus(t *testing.T) {
	fm := &fakeMetrics{err: &backend.StatusError{StatusCode: http.StatusNotModified}}
	s := NewServer(fm, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/metrics?brand_name=Acme", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Not Modified", env.Error)
}

func TestPrompts(t *testing.T) {
	fm := &fakeMetrics{prompts: &models.PromptsResponse{
		Prompts:    []models.PromptItem{{Prompt: "best crm", Response: "Acme"}},
		Pagination: models.PromptsPagination{Page: 10, TotalPages: 20, TotalItems: 200, HasPrev: true, HasNext: true},
	}}
	s := NewServer(fm, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/prompts?brand_name=Acme&page=10&per_page=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, fm.lastPage)
	assert.Equal(t, 100, fm.lastPer)

	var page struct {
		Prompts []models.PromptItem `json:"prompts"`
		Pages   []interface{}       `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Prompts, 1)
	assert.Equal(t, []interface{}{1.0, "...", 9.0, 10.0, 11.0, "...", 20.0}, page.Pages)
}

func TestOverview(t *testing.T) {
	fm := &fakeMetrics{
		metrics: sampleMetrics(),
		prompts: &models.PromptsResponse{Pagination: models.PromptsPagination{Page: 1, TotalPages: 3}},
	}
	s := NewServer(fm, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/analytics/overview?website=acme.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fm.lastPage)
	assert.Equal(t, 10, fm.lastPer)

	var overview models.AnalyticsOverview
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, "acme.com", overview.Dashboard.Brand)
	assert.Equal(t, []models.PageItem{models.Page(1), models.Page(2), models.Page(3)}, overview.Prompts.Pages)
	assert.NotNil(t, overview.Prompts.Prompts)
}

func TestOverview_PromptsFailure(t *testing.T) {
	fm := &fakeMetrics{
		metrics:    sampleMetrics(),
		promptsErr: &backend.StatusError{StatusCode: http.StatusServiceUnavailable},
	}
	s := NewServer(fm, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/analytics/overview?brand_name=Acme", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
}

func TestPageWindow(t *testing.T) {
	s := NewServer(&fakeMetrics{}, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/insights/page-window?page=2&total_pages=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[1,2,3,"...",20]`, string(env.Data))

	w, _ = do(t, s, http.MethodGet, "/api/v1/insights/page-window?page=1&total_pages=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s := NewServer(&fakeMetrics{pingErr: errors.New("down")}, nil, nil, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, false, health["backend"])
}

func TestRequestIDAndCORS(t *testing.T) {
	s := NewServer(&fakeMetrics{}, nil, nil, "https://gego.ai")

	w, _ := do(t, s, http.MethodGet, "/api/v1/health", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, "https://gego.ai", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(requestIDHeader))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/v1/indexnow", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestIndexNow(t *testing.T) {
	sub := &fakeSubmitter{}
	s := NewServer(&fakeMetrics{}, sub, nil, "")

	w, env := do(t, s, http.MethodPost, "/api/v1/indexnow", []byte(`{"urls": ["/pricing", "https://gego.ai/blog"]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"https://gego.ai/pricing", "https://gego.ai/blog"}, sub.submitted)

	var result models.IndexNowResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 2, result.Submitted)
	assert.Equal(t, http.StatusAccepted, result.Status)
}

func TestIndexNow_Errors(t *testing.T) {
	s := NewServer(&fakeMetrics{}, &fakeSubmitter{}, nil, "")

	w, _ := do(t, s, http.MethodPost, "/api/v1/indexnow", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, s, http.MethodPost, "/api/v1/indexnow", []byte(`{"urls": ["https://evil.com/x"]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	failing := NewServer(&fakeMetrics{}, &fakeSubmitter{err: errors.New("rejected")}, nil, "")
	w, _ = do(t, failing, http.MethodPost, "/api/v1/indexnow", []byte(`{"urls": ["/"]}`))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	unconfigured := NewServer(&fakeMetrics{}, nil, nil, "")
	w, _ = do(t, unconfigured, http.MethodPost, "/api/v1/indexnow", []byte(`{"urls": ["/"]}`))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIndexNowKeyFile(t *testing.T) {
	s := NewServer(&fakeMetrics{}, &fakeSubmitter{}, nil, "")

	w, _ := do(t, s, http.MethodGet, "/site-key.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "site-key", w.Body.String())
}

func TestBlog(t *testing.T) {
	posts := fakePosts{posts: []*blog.Post{
		{Slug: "launch", Title: "Launch", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Content: "hello"},
	}}
	s := NewServer(&fakeMetrics{}, nil, posts, "")

	w, env := do(t, s, http.MethodGet, "/api/v1/blog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []blog.Post
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "launch", list[0].Slug)

	w, env = do(t, s, http.MethodGet, "/api/v1/blog/launch", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post blog.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "hello", post.Content)

	w, _ = do(t, s, http.MethodGet, "/api/v1/blog/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
