package web

import (
	"net/http"

	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeMissing(w, r, "username or password")
		return
	}

	out, err := s.identity.Register(r.Context(), &identity.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":  true,
		"user_id":  out.User.ID,
		"username": out.User.Name,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeMissing(w, r, "username or password")
		return
	}

	out, err := s.identity.Authenticate(r.Context(), &identity.AuthenticateInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":  true,
		"user_id":  out.User.ID,
		"username": out.User.Name,
	})
}

// handleLogout is stateless; clients drop their user ID
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
	})
}
