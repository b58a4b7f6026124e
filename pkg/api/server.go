package api

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kinship/pkg/buildinfo"
	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/httputil"
	kio "github.com/matzehuels/kinship/pkg/io"
	"github.com/matzehuels/kinship/pkg/observability"
	"github.com/matzehuels/kinship/pkg/pipeline"
	"github.com/matzehuels/kinship/pkg/store"
)

// Server serves the layout API.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// CreateRequest is the body of POST /v1/layouts.
type CreateRequest struct {
	Document *kio.Document   `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// CreateResponse is returned for a stored layout.
type CreateResponse struct {
	ID     string        `json:"id"`
	Cached bool          `json:"cached"`
	Layout *graph.Layout `json:"layout"`
}

// ListResponse is returned by GET /v1/layouts.
type ListResponse struct {
	Layouts []store.Summary `json:"layouts"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	if s.Logger == nil {
		s.Logger = log.Default()
	}
	h := func(fn httputil.HandlerFunc) http.Handler { return httputil.Handler(s.Logger, fn) }

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestHooks)

	r.Method(http.MethodGet, "/healthz", h(s.health))
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Method(http.MethodPost, "/", h(s.create))
		r.Method(http.MethodGet, "/", h(s.list))
		r.Method(http.MethodGet, "/{id}", h(s.get))
		r.Method(http.MethodDelete, "/{id}", h(s.delete))
		r.Method(http.MethodGet, "/{id}/render", h(s.render))
	})
	return r
}

// requestHooks reports every request to the registered request hooks under
// its route pattern.
func requestHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Request().OnRequest(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
	return nil
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) error {
	var req CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Document == nil {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "missing document")
	}
	opts := req.Options
	opts.Logger = s.Logger
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	ctx := r.Context()
	in, err := s.Runner.LoadDocument(ctx, req.Document, "request", opts)
	if err != nil {
		return err
	}
	l, hit, err := s.Runner.LayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		return err
	}
	id, err := s.Store.Save(ctx, &l)
	if err != nil {
		return err
	}
	w.Header().Set("Location", "/v1/layouts/"+id)
	httputil.JSON(w, http.StatusCreated, CreateResponse{ID: id, Cached: hit, Layout: &l})
	return nil
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return kerrors.New(kerrors.ErrCodeInvalidInput, "invalid limit %q", v)
		}
		limit = n
	}
	sums, err := s.Store.List(r.Context(), q.Get("root"), limit)
	if err != nil {
		return err
	}
	if sums == nil {
		sums = []store.Summary{}
	}
	httputil.JSON(w, http.StatusOK, ListResponse{Layouts: sums})
	return nil
}

func (s *Server) lookup(r *http.Request) (*graph.Layout, error) {
	id := chi.URLParam(r, "id")
	l, err := s.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httputil.Errorf(http.StatusNotFound, kerrors.ErrCodeNotFound, "layout %q not found", id)
	}
	return l, err
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) error {
	l, err := s.lookup(r)
	if err != nil {
		return err
	}
	httputil.JSON(w, http.StatusOK, l)
	return nil
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	err := s.Store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return httputil.Errorf(http.StatusNotFound, kerrors.ErrCodeNotFound, "layout %q not found", id)
	}
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	opts := pipeline.Options{Logger: s.Logger, Labels: q.Get("labels") == "true"}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	if v := q.Get("frame"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return kerrors.New(kerrors.ErrCodeInvalidInput, "invalid frame %q", v)
		}
		opts.Frame = n
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	var disposition string
	if name := q.Get("download"); name != "" {
		if err := kerrors.ValidatePath(name); err != nil {
			return err
		}
		disposition = mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(name)})
	}

	l, err := s.lookup(r)
	if err != nil {
		return err
	}
	out, err := s.Runner.Render(r.Context(), *l, opts)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(out[format])
	return err
}
