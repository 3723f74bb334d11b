package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/net/html"

	"github.com/vcrobe/landing/appcomponents"
	"github.com/vcrobe/landing/appcomponents/pages"
	"github.com/vcrobe/landing/appcomponents/sections"
	"github.com/vcrobe/landing/gateway"
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, cache bool) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(Options{
		Document: Document{Title: "Verdant", Description: "Greenhouse monitoring", Lang: "en", Stylesheet: "/static/landing.css"},
		Router:   appcomponents.NewRouter(pages.LatestRevision),
		Cache:    cache,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// sectionsInDocument parses the served HTML and returns data-section values
// in document order.
func sectionsInDocument(t *testing.T, body string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var out []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == sections.AttrSection {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return out
}

func TestHandler_HomeServesLatestRevision(t *testing.T) {
	_, ts := newTestServer(t, true)

	resp, body := get(t, ts.URL+"/", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"), "got %.40q", body)
	assert.Contains(t, body, "<title>Verdant</title>")
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/landing.css">`)
	assert.Contains(t, body, `<div id="app">`)

	want := []string{"nav-header", "hero", "solution-features", "tech"}
	if diff := cmp.Diff(want, sectionsInDocument(t, body)); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_Revisions(t *testing.T) {
	_, ts := newTestServer(t, true)

	tests := []struct {
		path string
		want []string
	}{
		{"/revisions/1", []string{"nav-header", "hero"}},
		{"/revisions/r2", []string{"nav-header", "hero", "solution-features"}},
		{"/revisions/latest", []string{"nav-header", "hero", "solution-features", "tech"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			if diff := cmp.Diff(tt.want, sectionsInDocument(t, body)); diff != "" {
				t.Errorf("section order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_NotFound(t *testing.T) {
	_, ts := newTestServer(t, true)

	for _, path := range []string{"/revisions/9", "/pricing", "/a/b/c"} {
		resp, body := get(t, ts.URL+path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body, "Page not found", path)
		assert.Contains(t, body, `data-page="not-found"`, path)
	}
}

func TestHandler_IdempotentAndCached(t *testing.T) {
	s, ts := newTestServer(t, true)

	first, body1 := get(t, ts.URL+"/", nil)
	second, body2 := get(t, ts.URL+"/", nil)

	assert.Equal(t, body1, body2)
	assert.Equal(t, first.Header.Get("ETag"), second.Header.Get("ETag"))
	assert.Equal(t, 1, s.cache.len())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Renders.WithLabelValues("/")))

	// Not-found pages are never cached.
	get(t, ts.URL+"/nope", nil)
	get(t, ts.URL+"/nope", nil)
	assert.Equal(t, 1, s.cache.len())
}

func TestHandler_UncachedRendersAreIdentical(t *testing.T) {
	s, ts := newTestServer(t, false)

	_, body1 := get(t, ts.URL+"/revisions/2", nil)
	_, body2 := get(t, ts.URL+"/revisions/2", nil)

	assert.Equal(t, body1, body2)
	assert.Equal(t, 0, s.cache.len())
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.Renders.WithLabelValues(appcomponents.RouteRevision)))
}

func TestHandler_ConditionalGet(t *testing.T) {
	_, ts := newTestServer(t, true)

	resp, _ := get(t, ts.URL+"/", nil)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	resp, body := get(t, ts.URL+"/", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body)
}

func TestHandler_ConcurrentMissesShareRender(t *testing.T) {
	s, ts := newTestServer(t, true)

	var wg sync.WaitGroup
	bodies := make([]string, 8)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Get(ts.URL + "/revisions/3")
			if err != nil {
				return
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			bodies[i] = string(b)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
	assert.Equal(t, 1, s.cache.len())
}

func TestHandler_Operational(t *testing.T) {
	_, ts := newTestServer(t, true)

	resp, body := get(t, ts.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	get(t, ts.URL+"/", nil)
	resp, body = get(t, ts.URL+"/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "landing_renders_total")
	assert.Contains(t, body, "landing_render_duration_seconds")

	resp, body = get(t, ts.URL+"/static/landing.css", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".hero")

	resp, _ = get(t, ts.URL+"/static/logos/sqlite.svg", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// brokenPage panics while rendering.
type brokenPage struct{ runtime.ComponentBase }

func (b *brokenPage) Render(r runtime.Renderer) *vdom.VNode { panic("broken") }

func TestServer_RenderErrors(t *testing.T) {
	s := NewServer(Options{})

	_, _, err := s.Render(context.Background(), "broken", &brokenPage{})
	assert.ErrorIs(t, err, runtime.ErrRenderPanic)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Panics.WithLabelValues("Render")))

	body, status, err := s.Render(context.Background(), "home", &pages.Home{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `data-section="tech"`)
}

func TestServer_BrokenRouteAnswers500(t *testing.T) {
	r := appcomponents.NewRouter(pages.LatestRevision)
	r.Handle("/broken", func(map[string]string) runtime.Component { return &brokenPage{} })
	ts := httptest.NewServer(NewHandler(Options{Router: r, Cache: true}))
	defer ts.Close()

	resp, body := get(t, ts.URL+"/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "Internal Server Error")
	assert.NotContains(t, body, "panicked")
}

func TestHandler_PathVariantsShareCacheEntries(t *testing.T) {
	s, ts := newTestServer(t, true)
	get(t, ts.URL+"/", nil)
	get(t, ts.URL+"/revisions/2", nil)
	require.Equal(t, 2, s.cache.len())

	for i := 1; i <= 20; i++ {
		resp, _ := get(t, ts.URL+"/revisions/"+strings.Repeat("%20", i)+"3", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%d spaces", i)
	}
	for i := 2; i <= 20; i++ {
		resp, body := get(t, ts.URL+strings.Repeat("/", i), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "%d slashes", i)
		assert.Equal(t, []string{"nav-header", "hero", "solution-features", "tech"}, sectionsInDocument(t, body))
	}
	for _, path := range []string{"/revisions/3", "/revisions/3/", "/revisions//3", "/revisions/R3", "/revisions/LATEST", "/revisions/r2"} {
		resp, _ := get(t, ts.URL+path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	assert.Equal(t, 2, s.cache.len())
	assert.Equal(t, 20.0, testutil.ToFloat64(s.metrics.Renders.WithLabelValues("not_found")),
		"only the padded revisions fall through to the not-found page")
}

func TestHandler_GatewayEndpoints(t *testing.T) {
	st, err := gateway.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	m := NewMetrics()
	s := NewServer(Options{
		Router:  appcomponents.NewRouter(pages.LatestRevision),
		Metrics: m,
		Cache:   true,
		Gateway: gateway.New(gateway.Options{Store: st, Ingested: m.Readings}),
	})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+gateway.PathIngest, "application/json", strings.NewReader(`{"soil_moisture": 31, "pump_on": true}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := get(t, ts.URL+gateway.PathHistory, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"soil_moisture":31`)
	assert.Contains(t, body, `"pump_on":true`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Readings.WithLabelValues("saved")))
	assert.Equal(t, 0, s.cache.len(), "gateway responses bypass the page cache")

	resp, _ = get(t, ts.URL+gateway.PathIngest, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandler_NoGatewayMeansNotFound(t *testing.T) {
	_, ts := newTestServer(t, true)

	resp, _ := get(t, ts.URL+gateway.PathHistory, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
