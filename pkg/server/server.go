// Package server implements the live preview server behind the serve
// command. It renders the source file once at startup, serves the
// interactive page over HTTP, and optionally watches the file: every
// change re-renders and tells connected browsers to reload over a
// websocket.
//
// A failed re-render never takes the preview down; the previous page stays
// up and the error is logged.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/Ezz-di/dot-to-html-graph/pkg/observability"
	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render"
	"github.com/Ezz-di/dot-to-html-graph/pkg/session"
)

// DefaultAddr is the listen address when Options.Addr is empty.
const DefaultAddr = "127.0.0.1:8080"

// renderTimeout bounds a single watch-triggered re-render.
const renderTimeout = 30 * time.Second

var reloadMessage = []byte("reload")

// reloadScript is injected before </body> of every served page. It reloads
// the page when the server broadcasts, and reconnects after the server
// restarts.
const reloadScript = `
<script>
(function() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  function connect() {
    var sock = new WebSocket(proto + location.host + "/ws");
    sock.onmessage = function() { location.reload(); };
    sock.onclose = function() { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>
`

// The preview server binds to localhost; Go's default origin check rejects
// the hostname/IP mismatches common in local setups.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Options configures the preview server.
type Options struct {
	// Addr is the listen address. Empty means DefaultAddr.
	Addr string

	// Watch re-renders on source file changes and broadcasts reloads.
	Watch bool

	// Debounce is the watch quiet period. Zero means DefaultDebounce.
	Debounce time.Duration

	// History, when set, backs the /runs endpoint with recent render runs.
	History session.Store

	Logger *log.Logger
}

// Server serves the rendered page and pushes reload events to browsers.
type Server struct {
	runner   *pipeline.Runner
	path     string
	pipeOpts pipeline.Options

	addr     string
	watch    bool
	debounce time.Duration
	history  session.Store
	hub      *hub
	logger   *log.Logger

	mu        sync.RWMutex
	page      []byte
	graphJSON []byte
}

// New creates a preview server for the source file at path. pipeOpts is
// the options template; the server supplies Source, SourceName, and
// Formats itself on every render.
func New(runner *pipeline.Runner, path string, pipeOpts pipeline.Options, o Options) *Server {
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}
	addr := o.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		runner:   runner,
		path:     path,
		pipeOpts: pipeOpts,
		addr:     addr,
		watch:    o.Watch,
		debounce: o.Debounce,
		history:  o.History,
		hub:      newHub(),
		logger:   logger,
	}
}

// Run renders once, starts the HTTP server, and blocks until ctx is
// canceled or the listener fails. The initial render must succeed;
// later re-renders may fail without taking the server down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.render(ctx); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	if s.watch {
		w, err := newWatcher(s.path, s.debounce, s.onFileChange, func(err error) {
			s.logger.Error("watch error", "error", err)
		})
		if err != nil {
			return err
		}
		w.Start()
		defer w.Stop()
		s.logger.Info("watching for changes", "path", s.path)
	}

	httpSrv := &http.Server{Addr: s.addr, Handler: s.Routes()}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	s.logger.Info("preview server listening", "url", "http://"+s.addr)

	select {
	case <-ctx.Done():
		s.hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/graph.json", s.handleGraphJSON)
	r.Get("/runs", s.handleRuns)
	r.Get("/ws", s.handleWS)
	return r
}

// render reads the source file, runs the pipeline, and swaps in the new
// page with the reload script injected.
func (s *Server) render(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	opts := s.pipeOpts
	opts.Source = data
	opts.SourceName = s.path
	opts.Formats = []string{pipeline.FormatHTML, pipeline.FormatJSON}

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	page, err := render.InjectBeforeBodyClose(result.Artifacts[pipeline.FormatHTML], []byte(reloadScript))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.page = page
	s.graphJSON = result.Artifacts[pipeline.FormatJSON]
	s.mu.Unlock()
	return nil
}

// onFileChange is the debounced watch callback.
func (s *Server) onFileChange(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	observability.Server().OnFileChange(ctx, path)
	s.logger.Info("source changed", "path", path)

	if err := s.render(ctx); err != nil {
		s.logger.Error("re-render failed, keeping previous page", "error", err)
		return
	}
	s.hub.Broadcast(reloadMessage)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.graphJSON
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.history == nil {
		w.Write([]byte("[]"))
		return
	}

	runs, err := s.history.List(r.Context(), 10)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*session.Run{}
	}
	json.NewEncoder(w).Encode(runs)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("ws upgrade failed", "error", err)
		return
	}
	defer c.Close()

	clients := s.hub.Add(c)
	observability.Server().OnClientConnected(r.Context(), clients)
	s.logger.Debug("reload client connected", "clients", clients)

	// Read until the client goes away; reloads flow the other direction.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	clients = s.hub.Remove(c)
	observability.Server().OnClientDisconnected(r.Context(), clients)
	s.logger.Debug("reload client disconnected", "clients", clients)
}
