package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/KirkDiggler/promptgen/internal/services/messaging"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	logDate             = `2006-01-02T15:04:05.000-07:00`
	readTimeout         = 10 * time.Second
	defaultWriteTimeout = 2 * time.Minute
	shutdownTimeout     = 5 * time.Second
	maxBodyBytes        = 1 << 20
)

// Server is the JSON API of the game
type Server struct {
	cfg      Config
	identity identity.Service
	games    Games
	messages messaging.Service
	hub      *Hub
	upgrader websocket.Upgrader
	router   *httprouter.Router
}

// New creates a server and registers its routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Identity == nil {
		return nil, ErrNilIdentity
	}
	if cfg.Games == nil {
		return nil, ErrNilGames
	}
	if cfg.Messages == nil {
		return nil, ErrNilMessages
	}
	if cfg.Hub == nil {
		return nil, ErrNilHub
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	s := &Server{
		cfg:      *cfg,
		identity: cfg.Identity,
		games:    cfg.Games,
		messages: cfg.Messages,
		hub:      cfg.Hub,
	}
	if s.cfg.WriteTimeout == 0 {
		s.cfg.WriteTimeout = defaultWriteTimeout
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() *httprouter.Router {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Printf("Panic serving %s %s: %v", r.Method, r.URL.Path, i)
		s.writeJSON(w, r, http.StatusInternalServerError, map[string]any{
			"error": "An unexpected error occurred",
		})
	}

	mux.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsHeaders(w)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.POST("/register", s.handleRegister)
	mux.POST("/login", s.handleLogin)
	mux.POST("/logout", s.handleLogout)

	mux.POST("/add_player", s.handleAddPlayer)
	mux.GET("/get_initial_image", s.handleGetInitialImage)
	mux.POST("/send_prompt", s.handleSendPrompt)
	mux.GET("/game_status", s.handleGameStatus)
	mux.GET("/get_player_images", s.handleGetPlayerImages)
	mux.POST("/send_vote", s.handleSendVote)
	mux.POST("/tally", s.handleTally)
	mux.GET("/final_results", s.handleFinalResults)
	mux.GET("/scoreboard", s.handleScoreboard)
	mux.POST("/generate", s.handleGenerate)
	mux.POST("/new_game", s.handleNewGame)

	mux.GET("/ws", s.handleWS)
	mux.GET("/join.png", s.handleJoinCode)
	mux.GET("/healthz", s.handleHealthCheck)
	mux.GET("/version", s.handleVersion)

	return mux
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port)),
		Handler:           s.router,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("Listening on http://%s/", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not closed by Shutdown
	s.hub.Close()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logf(format string, args ...any) {
	if !s.cfg.Verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

func (s *Server) corsHeaders(w http.ResponseWriter) {
	if s.cfg.AllowOrigin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("X-Real-IP"); ip != "" && net.ParseIP(ip) != nil {
		host = ip
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, map[string]any{
			"error": "Invalid request body",
		})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	startTime := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("Error encoding response for %s: %v", r.URL.Path, err)
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"An unexpected error occurred"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(w)
	s.corsHeaders(w)
	w.WriteHeader(status)

	if _, err := w.Write(append(payload, '\n')); err != nil {
		log.Printf("Error writing response for %s: %v", r.URL.Path, err)
		return
	}

	s.logf("SERVE: %s %s %d (%d bytes) to %s in %s",
		r.Method,
		r.URL.Path,
		status,
		len(payload),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}
