package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/common/uuid"
	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/storage/sqlite"
)

// SQLiteConfig holds configuration for the SQLite history repository
type SQLiteConfig struct {
	// DB is an open database with the promptgen schema applied
	DB *sql.DB

	// UUIDGenerator issues game and prompt IDs, defaults to random UUIDs
	UUIDGenerator uuid.UUID

	// Clock stamps records, defaults to the system clock
	Clock clock.Clock
}

type sqliteRepository struct {
	db            *sql.DB
	uuidGenerator uuid.UUID
	clock         clock.Clock
}

// NewSQLite creates a new SQLite-backed history repository
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("sql db cannot be nil")
	}

	repo := &sqliteRepository{
		db:            cfg.DB,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.New()
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}

	return repo, nil
}

const gameColumns = `g.id, g.players, g.max_rounds, COALESCE(g.winner_id, ''), COALESCE(u.name, ''), g.created_at, COALESCE(g.finished_at, 0)`

const promptColumns = `p.id, p.game_id, p.user_id, COALESCE(u.name, ''), p.round, p.text, p.asset_ref, p.created_at`

// CreateGame inserts a new game row
func (r *sqliteRepository) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	game := &models.GameRecord{
		ID:        r.uuidGenerator.NewUUID(),
		Players:   input.Players,
		MaxRounds: input.MaxRounds,
		CreatedAt: r.clock.Now(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO games (id, players, max_rounds, created_at) VALUES (?, ?, ?, ?)`,
		game.ID, game.Players, game.MaxRounds, sqlite.ToMillis(game.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}

	return &CreateGameOutput{
		Game: game,
	}, nil
}

// AddParticipant inserts a participant row, keeping the first join time
func (r *sqliteRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return errors.New("input, game ID and user ID cannot be empty")
	}

	if err := r.requireGame(ctx, input.GameID); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_participants (game_id, user_id, joined_at) VALUES (?, ?, ?)`,
		input.GameID, input.UserID, sqlite.ToMillis(r.clock.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	return nil
}

// RecordPrompt inserts a prompt row
func (r *sqliteRepository) RecordPrompt(ctx context.Context, input *RecordPromptInput) (*RecordPromptOutput, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, errors.New("input, game ID and user ID cannot be empty")
	}

	if err := r.requireGame(ctx, input.GameID); err != nil {
		return nil, err
	}

	prompt := &models.Prompt{
		ID:        r.uuidGenerator.NewUUID(),
		GameID:    input.GameID,
		UserID:    input.UserID,
		Round:     input.Round,
		Text:      input.Text,
		CreatedAt: r.clock.Now(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO prompts (id, game_id, user_id, round, text, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		prompt.ID, prompt.GameID, prompt.UserID, prompt.Round, prompt.Text, sqlite.ToMillis(prompt.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert prompt: %w", err)
	}

	return &RecordPromptOutput{
		Prompt: prompt,
	}, nil
}

// RecordGeneratedAsset sets the asset reference on a prompt row
func (r *sqliteRepository) RecordGeneratedAsset(ctx context.Context, input *RecordGeneratedAssetInput) error {
	if input == nil || input.PromptID == "" {
		return errors.New("input and prompt ID cannot be empty")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE prompts SET asset_ref = ? WHERE id = ?`,
		input.AssetRef, input.PromptID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prompt asset: %w", err)
	}

	return requireAffected(res, ErrPromptNotFound)
}

// FinalizeGame sets the winner and finish time on a game row
func (r *sqliteRepository) FinalizeGame(ctx context.Context, input *FinalizeGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET winner_id = ?, finished_at = ? WHERE id = ?`,
		input.WinnerID, sqlite.ToMillis(r.clock.Now()), input.GameID,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize game: %w", err)
	}

	return requireAffected(res, ErrGameNotFound)
}

// ListGames returns games newest first with winner names resolved
func (r *sqliteRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	limit := -1
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameColumns+`
		FROM games g LEFT JOIN users u ON u.id = g.winner_id
		ORDER BY g.created_at DESC, g.id
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []*models.GameRecord{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return &ListGamesOutput{
		Games: games,
	}, nil
}

// GetGame returns a game with its participants in join order and prompts in submission order
func (r *sqliteRepository) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+`
		FROM games g LEFT JOIN users u ON u.id = g.winner_id
		WHERE g.id = ?`,
		input.GameID,
	))
	if err != nil {
		return nil, err
	}

	participants, err := r.participants(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	prompts, err := r.prompts(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{
		Game:         game,
		Participants: participants,
		Prompts:      prompts,
	}, nil
}

// GetPrompt returns a prompt with its author's name resolved
func (r *sqliteRepository) GetPrompt(ctx context.Context, input *GetPromptInput) (*models.Prompt, error) {
	if input == nil || input.PromptID == "" {
		return nil, errors.New("input and prompt ID cannot be empty")
	}

	return scanPrompt(r.db.QueryRowContext(ctx,
		`SELECT `+promptColumns+`
		FROM prompts p LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = ?`,
		input.PromptID,
	))
}

func (r *sqliteRepository) participants(ctx context.Context, gameID string) ([]*models.Participant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT gp.game_id, gp.user_id, COALESCE(u.name, ''), gp.joined_at
		FROM game_participants gp LEFT JOIN users u ON u.id = gp.user_id
		WHERE gp.game_id = ?
		ORDER BY gp.joined_at, gp.rowid`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []*models.Participant{}
	for rows.Next() {
		var (
			p        models.Participant
			joinedAt int64
		)
		if err := rows.Scan(&p.GameID, &p.UserID, &p.UserName, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.JoinedAt = sqlite.FromMillis(joinedAt)
		participants = append(participants, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

func (r *sqliteRepository) prompts(ctx context.Context, gameID string) ([]*models.Prompt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+promptColumns+`
		FROM prompts p LEFT JOIN users u ON u.id = p.user_id
		WHERE p.game_id = ?
		ORDER BY p.created_at, p.rowid`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	prompts := []*models.Prompt{}
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompts: %w", err)
	}

	return prompts, nil
}

func (r *sqliteRepository) requireGame(ctx context.Context, gameID string) error {
	var found int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to look up game: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*models.GameRecord, error) {
	var (
		game       models.GameRecord
		createdAt  int64
		finishedAt int64
	)
	err := row.Scan(&game.ID, &game.Players, &game.MaxRounds, &game.WinnerID, &game.WinnerName, &createdAt, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	game.CreatedAt = sqlite.FromMillis(createdAt)
	if finishedAt != 0 {
		game.FinishedAt = sqlite.FromMillis(finishedAt)
	}
	return &game, nil
}

func scanPrompt(row rowScanner) (*models.Prompt, error) {
	var (
		prompt    models.Prompt
		createdAt int64
	)
	err := row.Scan(&prompt.ID, &prompt.GameID, &prompt.UserID, &prompt.UserName, &prompt.Round, &prompt.Text, &prompt.AssetRef, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to scan prompt: %w", err)
	}
	prompt.CreatedAt = sqlite.FromMillis(createdAt)
	return &prompt, nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
