package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/KirkDiggler/promptgen/internal/services/game"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/KirkDiggler/promptgen/internal/services/messaging"
)

// writeError maps service errors onto status codes and player-facing text
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var stateErr *round.InvalidStateError
	if errors.As(err, &stateErr) {
		required := make([]string, 0, len(stateErr.Required))
		for _, status := range stateErr.Required {
			required = append(required, status.String())
		}

		body := map[string]any{
			"error":    "not ready",
			"phase":    stateErr.Current.String(),
			"required": required,
		}
		if out, msgErr := s.messages.GetPhaseMessage(ctx, &messaging.GetPhaseMessageInput{
			Current:  stateErr.Current,
			Required: stateErr.Required,
		}); msgErr == nil {
			body["message"] = out.Message
		}

		s.writeJSON(w, r, http.StatusConflict, body)
		return
	}

	var genErr *game.GenerationError
	if errors.As(err, &genErr) {
		log.Printf("Generation failed: %v", genErr)

		body := map[string]any{
			"error":     "generation failed",
			"stage":     string(genErr.Stage),
			"retryable": true,
			"message":   s.errorMessage(r, messaging.ErrorTypeGenerationFailed),
		}
		if genErr.PlayerID != "" {
			body["player_id"] = genErr.PlayerID
		}

		s.writeJSON(w, r, http.StatusBadGateway, body)
		return
	}

	status, errorType := classifyError(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error serving %s %s: %v", r.Method, r.URL.Path, err)
		s.writeJSON(w, r, status, map[string]any{
			"error": "An unexpected error occurred",
		})
		return
	}

	body := map[string]any{
		"error": err.Error(),
	}
	if errorType != "" {
		body["message"] = s.errorMessage(r, errorType)
	}

	s.writeJSON(w, r, status, body)
}

func (s *Server) errorMessage(r *http.Request, errorType messaging.ErrorType) string {
	out, err := s.messages.GetErrorMessage(r.Context(), &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if err != nil {
		return ""
	}
	return out.Message
}

func classifyError(err error) (int, messaging.ErrorType) {
	switch {
	case errors.Is(err, identity.ErrMissingCredentials),
		errors.Is(err, identity.ErrInvalidName),
		errors.Is(err, round.ErrInvalidPlayerID),
		errors.Is(err, game.ErrNilInput):
		return http.StatusBadRequest, ""
	case errors.Is(err, round.ErrEmptyPrompt):
		return http.StatusBadRequest, messaging.ErrorTypeEmptyPrompt
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, messaging.ErrorTypeInvalidCredentials
	case errors.Is(err, game.ErrUnknownUser),
		errors.Is(err, identity.ErrUserNotFound):
		return http.StatusNotFound, messaging.ErrorTypeUnknownUser
	case errors.Is(err, round.ErrUnknownPlayer):
		return http.StatusNotFound, ""
	case errors.Is(err, identity.ErrNameTaken):
		return http.StatusConflict, messaging.ErrorTypeNameTaken
	case errors.Is(err, round.ErrRosterFull):
		return http.StatusConflict, messaging.ErrorTypeRosterFull
	case errors.Is(err, round.ErrPlayerAlreadyJoined):
		return http.StatusConflict, messaging.ErrorTypeAlreadyJoined
	case errors.Is(err, round.ErrPromptAlreadySubmitted):
		return http.StatusConflict, messaging.ErrorTypeAlreadySubmitted
	case errors.Is(err, round.ErrGenerationInProgress):
		return http.StatusConflict, messaging.ErrorTypeGenerationBusy
	case errors.Is(err, game.ErrGameInProgress):
		return http.StatusConflict, messaging.ErrorTypeGameInProgress
	default:
		return http.StatusInternalServerError, ""
	}
}

func (s *Server) writeMissing(w http.ResponseWriter, r *http.Request, field string) {
	s.writeJSON(w, r, http.StatusBadRequest, map[string]any{
		"error": "Missing " + field,
	})
}
