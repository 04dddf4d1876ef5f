package web

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const joinCodeSize = 256

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"ok":      true,
		"clients": s.hub.Count(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"version": s.cfg.Version,
	})
}

// handleJoinCode serves a QR code that points phones at the game
func (s *Server) handleJoinCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	startTime := time.Now()

	png, err := qrcode.Encode(s.joinURL(r), qrcode.Medium, joinCodeSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(w)
	s.corsHeaders(w)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(png); err != nil {
		log.Printf("Error writing join code: %v", err)
		return
	}

	s.logf("SERVE: Join code (%d bytes) to %s in %s",
		len(png),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}

func (s *Server) joinURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/"
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	return scheme + "://" + r.Host + "/"
}
