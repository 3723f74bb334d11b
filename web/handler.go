// Package web serves rendered pages over HTTP.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vcrobe/landing/gateway"
	"github.com/vcrobe/landing/router"
	"github.com/vcrobe/landing/runtime"
)

//go:embed static
var staticFiles embed.FS

// StaticPrefix is where embedded assets are served.
const StaticPrefix = "/static/"

// statusCoder is implemented by pages that answer with a non-200 status.
type statusCoder interface {
	StatusCode() int
}

// cacheKeyer is implemented by pages whose markup depends only on the key.
// Pages without a key are rendered on every request.
type cacheKeyer interface {
	CacheKey() string
}

// Options configures NewHandler.
type Options struct {
	Document Document
	Router   *router.Router
	Metrics  *Metrics
	Logger   *zap.Logger
	Dev      bool
	Cache    bool
	// Gateway, when set, serves sensor ingestion and reading history.
	Gateway  *gateway.Gateway
}

// Server renders router pages into HTML documents.
type Server struct {
	doc     Document
	router  *router.Router
	metrics *Metrics
	logger  *zap.Logger
	dev     bool
	cache   *pageCache
	gateway *gateway.Gateway
}

// NewServer fills in defaults for unset options.
func NewServer(opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Router == nil {
		opts.Router = router.New()
	}
	return &Server{
		doc:     opts.Document,
		router:  opts.Router,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		dev:     opts.Dev,
		cache:   newPageCache(opts.Cache),
		gateway: opts.Gateway,
	}
}

// NewHandler creates the HTTP handler for the landing site.
func NewHandler(opts Options) http.Handler {
	return NewServer(opts).Handler()
}

// Handler mounts every router pattern plus the operational endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.CleanPath)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	if s.gateway != nil {
		s.gateway.Register(r)
	}

	static, err := fs.Sub(staticFiles, "static")
	if err == nil {
		r.Handle(StaticPrefix+"*", http.StripPrefix(StaticPrefix, http.FileServer(http.FS(static))))
	}

	for _, rt := range s.router.Routes() {
		rt := rt
		r.Get(rt.Pattern, s.servePage(rt.Pattern, func(req *http.Request) runtime.Component {
			return rt.Factory(urlParams(req))
		}))
	}

	r.NotFound(s.servePage("not_found", func(req *http.Request) runtime.Component {
		comp, _, _ := s.router.Resolve(req.URL.Path)
		return comp
	}))

	return r
}

// urlParams copies chi's captured parameters into the map factories expect.
func urlParams(req *http.Request) map[string]string {
	params := make(map[string]string)
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

func (s *Server) servePage(route string, build func(*http.Request) runtime.Component) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		// The render may be shared with other requests through the cache,
		// so it must not die with this request.
		ctx := context.WithoutCancel(req.Context())
		comp := build(req)
		render := func() (*renderedPage, error) {
			return s.renderPage(ctx, route, comp)
		}

		var (
			page *renderedPage
			hit  bool
			err  error
		)
		if k, ok := comp.(cacheKeyer); ok {
			page, hit, err = s.cache.get(k.CacheKey(), render)
		} else {
			page, err = render()
		}
		if err != nil {
			s.logger.Error("page render failed",
				zap.String("route", route),
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if hit {
			s.metrics.CacheHits.Inc()
		}

		w.Header().Set("ETag", page.ETag)
		if page.Status == http.StatusOK && req.Header.Get("If-None-Match") == page.ETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(page.Status)
		_, _ = w.Write(page.Body)
	}
}

// Render renders comp into a complete HTML document and returns it with
// the HTTP status the page asks for. route labels the metrics.
func (s *Server) Render(ctx context.Context, route string, comp runtime.Component) ([]byte, int, error) {
	page, err := s.renderPage(ctx, route, comp)
	if err != nil {
		return nil, 0, err
	}
	return page.Body, page.Status, nil
}

func (s *Server) renderPage(ctx context.Context, route string, comp runtime.Component) (*renderedPage, error) {
	start := time.Now()
	defer func() {
		s.metrics.Renders.WithLabelValues(route).Inc()
		s.metrics.RenderDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}()

	sr := runtime.NewStaticRenderer(
		runtime.WithNavigator(s.router),
		runtime.WithDevMode(s.dev),
		runtime.WithPanicHandler(func(key, hook string, _ any) {
			s.metrics.Panics.WithLabelValues(hook).Inc()
		}),
	)
	defer sr.Destroy()

	tree, err := sr.Render(ctx, comp)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.doc.Render(&buf, tree); err != nil {
		return nil, err
	}

	status := http.StatusOK
	if sc, ok := comp.(statusCoder); ok {
		status = sc.StatusCode()
	}
	return newRenderedPage(buf.Bytes(), status), nil
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
