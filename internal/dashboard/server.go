// Package dashboard serves the interactive flow map: an HTML shell, the chart and
// JSON endpoints it loads from, and a websocket session that recomputes the view on
// every selection change.
package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/graphs"
)

type Options struct {
	Style          flowgraph.Style
	DefaultRegion  commuting.Region
	DefaultPurpose commuting.Purpose
	// IdleTimeout closes websocket sessions that send nothing for this long. Zero
	// disables it.
	IdleTimeout time.Duration
}

// Server answers every request from the same read-only tables.
type Server struct {
	tables   *commuting.Tables
	opts     Options
	logger   *slog.Logger
	upgrader websocket.Upgrader
	chart    graphs.Renderer
	document graphs.Renderer
}

func NewServer(tables *commuting.Tables, opts Options, logger *slog.Logger) *Server {
	return &Server{
		tables: tables,
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		chart:    graphs.NewECharts(opts.Style),
		document: graphs.NewJSON(false),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/chart", s.handleRender(s.chart, "text/html; charset=utf-8"))
	mux.HandleFunc("/api/flows", s.handleRender(s.document, "application/json"))
	mux.HandleFunc("/ws", s.handleSession)
	return mux
}

// selection reads region and purpose from the query string, falling back to the
// configured defaults for missing parameters.
func (s *Server) selection(r *http.Request) (commuting.Region, commuting.Purpose, error) {
	region, purpose := s.opts.DefaultRegion, s.opts.DefaultPurpose

	q := r.URL.Query()
	if raw := q.Get("region"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.Wrapf(commuting.ErrUnknownRegion, "%q", raw)
		}
		region = commuting.Region(code)
	}
	if raw := q.Get("purpose"); raw != "" {
		p, err := commuting.ParsePurpose(raw)
		if err != nil {
			return 0, 0, err
		}
		purpose = p
	}
	return region, purpose, nil
}

func (s *Server) build(r *http.Request) (*flowgraph.View, error) {
	region, purpose, err := s.selection(r)
	if err != nil {
		return nil, err
	}
	return flowgraph.Build(s.tables, region, purpose)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, commuting.ErrUnknownRegion) || errors.Is(err, commuting.ErrUnknownPurpose) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	v, err := s.build(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.opts.Style.Title, v); err != nil {
		s.logger.Error("page render failed", "err", err)
	}
}

func (s *Server) handleRender(renderer graphs.Renderer, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		v, err := s.build(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if err := renderer.Render(w, v); err != nil {
			s.logger.Error("render failed", "path", r.URL.Path, "err", err)
			return
		}
		s.logger.Debug("rendered", "path", r.URL.Path,
			"region", v.Graph.Anchor, "purpose", v.Graph.Purpose,
			"edges", len(v.Graph.Edges), "elapsed", time.Since(start))
	}
}
