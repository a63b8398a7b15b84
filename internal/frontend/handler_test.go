package frontend

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/matching"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/security"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/state"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTokenRe = regexp.MustCompile(`name="report" value="([^"]*)"`)

func newTestRouter(t *testing.T, maxChars int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := security.DefaultSecurityConfig()
	cfg.MaxInputChars = maxChars
	sm := security.NewSecurityMiddleware(cfg)
	svc := matching.NewService(analysis.FixtureProducer{}, analysis.ModeFixture, nil, nil, nil)

	r := gin.New()
	r.Use(security.CSPMiddleware(""))
	r.Use(sm.LimitBody)
	NewPageHandler(svc, sm).Register(r)
	return r
}

func submit(r http.Handler, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, body string) string {
	t.Helper()
	m := reportTokenRe.FindStringSubmatch(body)
	require.Len(t, m, 2)
	return m[1]
}

func TestShow(t *testing.T) {
	r := newTestRouter(t, 20000)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	body := w.Body.String()
	assert.NotContains(t, body, `id="results"`)
	assert.Contains(t, body, `name="theme" value="dark"`)
	assert.Contains(t, body, "disabled>Run analysis")
	assert.Empty(t, tokenFrom(t, body))
}

func TestShowLightTheme(t *testing.T) {
	r := newTestRouter(t, 20000)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?theme=light", nil))
	assert.Contains(t, w.Body.String(), `name="theme" value="light"`)
	assert.Contains(t, w.Body.String(), "Dark mode")
}

func TestSubmitAnalyze(t *testing.T) {
	r := newTestRouter(t, 20000)

	w := submit(r, url.Values{
		"action":     {ActionAnalyze},
		"resumeText": {"Java developer"},
		"jobText":    {"Need Java"},
		"theme":      {"dark"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="results"`)
	assert.Contains(t, body, "<strong>78/100</strong>")
	assert.Contains(t, body, "Java developer")

	rep, err := state.DecodeReport(tokenFrom(t, body))
	require.NoError(t, err)
	assert.Equal(t, analysis.SampleReport(), rep)
}

func TestSubmitAnalyzeNotReadyKeepsReport(t *testing.T) {
	r := newTestRouter(t, 20000)

	token, err := state.EncodeReport(analysis.SampleReport())
	require.NoError(t, err)

	w := submit(r, url.Values{
		"action":     {ActionAnalyze},
		"resumeText": {"   "},
		"jobText":    {"Need Java"},
		"report":     {token},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, tokenFrom(t, w.Body.String()))

	w = submit(r, url.Values{"action": {ActionAnalyze}, "resumeText": {""}, "jobText": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `id="results"`)
}

func TestSubmitToggleThemePreservesReport(t *testing.T) {
	r := newTestRouter(t, 20000)

	custom := analysis.SampleReport()
	custom.Score = 40
	custom.Radar = report.Radar{Skills: 10, Experience: 10, Education: 5, Keyword: 10, Impact: 5}
	token, err := state.EncodeReport(custom)
	require.NoError(t, err)

	w := submit(r, url.Values{
		"action":     {ActionToggleTheme},
		"resumeText": {"a"},
		"jobText":    {"b"},
		"theme":      {"dark"},
		"report":     {token},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="theme" value="light"`)
	assert.Contains(t, body, "<strong>40/100</strong>")
	assert.Equal(t, token, tokenFrom(t, body))
}

func TestSubmitBadTokenIsDiscarded(t *testing.T) {
	r := newTestRouter(t, 20000)

	w := submit(r, url.Values{
		"action":     {ActionToggleTheme},
		"resumeText": {"a"},
		"jobText":    {"b"},
		"report":     {"%%%not-a-token"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, `id="results"`)
	assert.Contains(t, body, "could not be restored")
}

func TestSubmitOversizedField(t *testing.T) {
	r := newTestRouter(t, 10)

	w := submit(r, url.Values{
		"action":     {ActionAnalyze},
		"resumeText": {strings.Repeat("é", 11)},
		"jobText":    {"job"},
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "resumeText is too large")
	assert.NotContains(t, w.Body.String(), "éééé")
}

func TestSubmitOversizedBody(t *testing.T) {
	r := newTestRouter(t, 10)

	w := submit(r, url.Values{
		"action":     {ActionAnalyze},
		"resumeText": {strings.Repeat("x", 200000)},
		"jobText":    {"job"},
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSubmitNonASCIIAtLimit(t *testing.T) {
	const limit = 20000
	r := newTestRouter(t, limit)

	token, err := state.EncodeReport(analysis.SampleReport())
	require.NoError(t, err)

	// Percent-encoding makes these 9 and 12 bytes per rune on the wire.
	for _, ch := range []string{"日", "𝄞"} {
		t.Run(ch, func(t *testing.T) {
			form := url.Values{
				"action":     {ActionToggleTheme},
				"resumeText": {strings.Repeat(ch, limit)},
				"jobText":    {strings.Repeat(ch, limit)},
				"theme":      {"dark"},
				"report":     {token},
			}
			require.Greater(t, len(form.Encode()), 2*9*limit)

			w := submit(r, form)
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, `name="theme" value="light"`)
			assert.Contains(t, body, `id="results"`)
			assert.NotContains(t, body, `role="alert"`)
		})
	}
}

func TestSubmitInvalidText(t *testing.T) {
	r := newTestRouter(t, 20000)

	w := submit(r, url.Values{
		"action":     {ActionAnalyze},
		"resumeText": {"bad\x00text"},
		"jobText":    {"job"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
}

func TestSubmitUnknownAction(t *testing.T) {
	r := newTestRouter(t, 20000)

	w := submit(r, url.Values{"action": {"delete"}, "resumeText": {"a"}, "jobText": {"b"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown action.")
}

func TestRenderPageWithoutNonceMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sm := security.NewSecurityMiddleware(security.DefaultSecurityConfig())
	svc := matching.NewService(analysis.FixtureProducer{}, analysis.ModeFixture, nil, nil, nil)

	r := gin.New()
	NewPageHandler(svc, sm).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `<style nonce="[^"]+">`, w.Body.String())
}
