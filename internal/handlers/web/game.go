package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/KirkDiggler/promptgen/internal/services/game"
	"github.com/KirkDiggler/promptgen/internal/services/messaging"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req addPlayerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		s.writeMissing(w, r, "user_id")
		return
	}

	out, err := s.games.Current().Join(r.Context(), &game.JoinInput{
		UserID: req.UserID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := map[string]any{
		"success":     true,
		"playerId":    out.PlayerID,
		"player_name": out.PlayerName,
		"roster_full": out.RosterFull,
		"status":      newStatusBody(out.Status),
	}
	if msg, err := s.messages.GetJoinMessage(r.Context(), &messaging.GetJoinMessageInput{
		PlayerName:      out.PlayerName,
		PlayerCount:     out.Status.PlayerCount,
		RequiredPlayers: out.Status.RequiredPlayers,
	}); err == nil {
		body["message"] = msg.Message
	}

	s.writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) handleGetInitialImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	out, err := s.games.Current().GetSeedImage(r.Context(), &game.GetSeedImageInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"prompt": out.Seed.Prompt,
		"image":  newImageBody(out.Seed.Image),
	})
}

func (s *Server) handleSendPrompt(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req sendPromptRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		s.writeMissing(w, r, "player_id")
		return
	}
	if req.Prompt == "" {
		s.writeMissing(w, r, "player_prompt")
		return
	}

	out, err := s.games.Current().SubmitPrompt(r.Context(), &game.SubmitPromptInput{
		PlayerID: req.PlayerID,
		Prompt:   req.Prompt,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"success":       true,
		"all_submitted": out.AllSubmitted,
		"status":        newStatusBody(out.Status),
	})
}

func (s *Server) handleGameStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	out, err := s.games.Current().GetStatus(r.Context(), &game.GetStatusInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, newStatusBody(out.Status))
}

func (s *Server) handleGetPlayerImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	out, err := s.games.Current().GetPlayerImages(r.Context(), &game.GetPlayerImagesInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	images := make(map[string]*imageBody, len(out.Images))
	for playerID, image := range out.Images {
		images[playerID] = newImageBody(image)
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"images": images,
	})
}

func (s *Server) handleSendVote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req sendVoteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		s.writeMissing(w, r, "user_id")
		return
	}
	if req.VotedForID == "" {
		s.writeMissing(w, r, "voted_for_id")
		return
	}

	ctx := r.Context()
	svc := s.games.Current()

	out, err := svc.CastVote(ctx, &game.CastVoteInput{
		VoterID:  req.UserID,
		TargetID: req.VotedForID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !out.Accepted {
		body := map[string]any{
			"accepted": false,
			"reason":   string(out.Reason),
		}
		if msg, err := s.messages.GetVoteRejectionMessage(ctx, &messaging.GetVoteRejectionMessageInput{
			Reason: out.Reason,
		}); err == nil {
			body["message"] = msg.Message
		}
		s.writeJSON(w, r, http.StatusOK, body)
		return
	}

	body := map[string]any{
		"accepted":  true,
		"success":   true,
		"all_voted": out.AllVoted,
		"status":    newStatusBody(out.Status),
	}

	if out.AllVoted && s.cfg.AutoTally {
		tally, err := svc.TallyVotes(ctx, &game.TallyVotesInput{})
		switch {
		case err == nil:
			result := s.roundResult(ctx, svc, tally)
			body["round"] = result
			body["tie"] = result.Tie
			body["game_over"] = result.GameOver
			body["status"] = newStatusBody(tally.Status)
		case isInvalidState(err):
			// another request tallied first
		default:
			s.writeError(w, r, err)
			return
		}
	}

	s.writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	svc := s.games.Current()

	out, err := svc.TallyVotes(ctx, &game.TallyVotesInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, s.roundResult(ctx, svc, out))
}

func (s *Server) handleFinalResults(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	out, err := s.games.Current().GetFinalResults(r.Context(), &game.GetFinalResultsInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"final_results": newResultBodies(out.Entries),
	})
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	out, err := s.games.Current().GetScoreboard(r.Context(), &game.GetScoreboardInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"scoreboard": newResultBodies(out.Entries),
		"status":     newStatusBody(out.Status),
	})
}

// handleGenerate runs or retries whichever generation the game is waiting on
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	svc := s.games.Current()

	status, err := svc.GetStatus(ctx, &game.GetStatusInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch status.Status.Status {
	case models.GameStatusGeneratingInitialImage:
		out, err := svc.GenerateInitialImage(ctx, &game.GenerateInitialImageInput{})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, map[string]any{
			"success": true,
			"prompt":  out.Seed.Prompt,
			"image":   newImageBody(out.Seed.Image),
			"status":  newStatusBody(out.Status),
		})
	case models.GameStatusGeneratingPlayerImages:
		out, err := svc.GeneratePlayerImages(ctx, &game.GeneratePlayerImagesInput{})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, map[string]any{
			"success": true,
			"images":  len(out.Images),
			"status":  newStatusBody(out.Status),
		})
	default:
		s.writeError(w, r, &round.InvalidStateError{
			Operation: "generate images",
			Current:   status.Status.Status,
			Required: []models.GameStatus{
				models.GameStatusGeneratingInitialImage,
				models.GameStatusGeneratingPlayerImages,
			},
		})
	}
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	svc, err := s.games.NewGame(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := svc.GetStatus(r.Context(), &game.GetStatusInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"status":  newStatusBody(out.Status),
	})
}

// roundResult renders a tally with player names and an announcement
func (s *Server) roundResult(ctx context.Context, svc game.Service, tally *game.TallyVotesOutput) *roundBody {
	result := &roundBody{
		WinnerID:      tally.WinnerID,
		Tie:           tally.Tie,
		Counts:        tally.Counts,
		ScoreDeltas:   tally.ScoreDeltas,
		GameOver:      tally.GameOver,
		FinalWinnerID: tally.FinalWinnerID,
	}

	board, err := svc.GetScoreboard(ctx, &game.GetScoreboardInput{})
	if err != nil {
		log.Printf("Error loading scoreboard for round result: %v", err)
		return result
	}

	names := make(map[string]string, len(board.Entries))
	for _, entry := range board.Entries {
		names[entry.PlayerID] = entry.PlayerName
	}
	if tally.GameOver {
		result.FinalResults = newResultBodies(board.Entries)
	}

	msg, err := s.messages.GetRoundResultMessage(ctx, &messaging.GetRoundResultMessageInput{
		WinnerName:      names[tally.WinnerID],
		Votes:           tally.Counts[tally.WinnerID],
		Tie:             tally.Tie,
		GameOver:        tally.GameOver,
		FinalWinnerName: names[tally.FinalWinnerID],
	})
	if err == nil {
		result.Title = msg.Title
		result.Message = msg.Message
	}

	return result
}

func isInvalidState(err error) bool {
	return errors.Is(err, round.ErrInvalidState)
}
