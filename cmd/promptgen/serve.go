package main

import (
	"log"
	"time"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/common/uuid"
	"github.com/KirkDiggler/promptgen/internal/handlers/web"
	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/KirkDiggler/promptgen/internal/services/game"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/KirkDiggler/promptgen/internal/services/imagegen"
	"github.com/KirkDiggler/promptgen/internal/services/messaging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validateServe(); err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}

	fs := cmd.Flags()
	normalizeFlags(fs)

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: PROMPTGEN_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5000, "port to listen on (env: PROMPTGEN_PORT)")
	fs.StringVar(&cfg.publicURL, "public-url", "", "URL encoded in the join QR code (env: PROMPTGEN_PUBLIC_URL)")
	fs.StringVar(&cfg.allowOrigin, "allow-origin", "", "value of Access-Control-Allow-Origin, empty disables CORS (env: PROMPTGEN_ALLOW_ORIGIN)")
	fs.IntVar(&cfg.players, "players", 3, "players needed to start a game (env: PROMPTGEN_PLAYERS)")
	fs.IntVar(&cfg.maxRounds, "max-rounds", round.DefaultMaxRounds, "rounds per game (env: PROMPTGEN_MAX_ROUNDS)")
	fs.BoolVar(&cfg.autoAdvance, "auto-advance", true, "generate images and tally votes without explicit requests (env: PROMPTGEN_AUTO_ADVANCE)")
	fs.DurationVar(&cfg.generationTimeout, "generation-timeout", 90*time.Second, "time allowed for each image generation step (env: PROMPTGEN_GENERATION_TIMEOUT)")
	fs.IntVar(&cfg.imageConcurrency, "image-concurrency", game.DefaultImageConcurrency, "parallel player image requests (env: PROMPTGEN_IMAGE_CONCURRENCY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log every request (env: PROMPTGEN_VERBOSE)")

	bindFlags(v, fs)

	return cmd
}

func runServe(cmd *cobra.Command, cfg *Config) error {
	ctx := cmd.Context()

	log.Printf("Starting promptgen v%s", releaseVersion)

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	identitySvc, err := identity.New(&identity.Config{
		UserRepo:      st.users,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		return err
	}

	imageCfg, err := imagegen.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	images, err := imagegen.New(imageCfg)
	if err != nil {
		return err
	}
	log.Printf("Using %s image provider", imageCfg.Provider)

	messages, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return err
	}

	hub := web.NewHub()

	lobby, err := game.NewLobby(&game.Config{
		Players:           cfg.players,
		MaxRounds:         cfg.maxRounds,
		AutoAdvance:       cfg.autoAdvance,
		GenerationTimeout: cfg.generationTimeout,
		ImageConcurrency:  cfg.imageConcurrency,
		Identity:          identitySvc,
		History:           st.history,
		Images:            images,
		Clock:             clock.New(),
		Notifier:          hub,
	})
	if err != nil {
		return err
	}

	server, err := web.New(&web.Config{
		Bind:         cfg.bind,
		Port:         cfg.port,
		PublicURL:    cfg.publicURL,
		AllowOrigin:  cfg.allowOrigin,
		Version:      releaseVersion,
		Verbose:      cfg.verbose,
		AutoTally:    cfg.autoAdvance,
		WriteTimeout: cfg.generationTimeout + 30*time.Second,
		Identity:     identitySvc,
		Games:        lobby,
		Messages:     messages,
		Hub:          hub,
	})
	if err != nil {
		return err
	}

	err = server.ListenAndServe(ctx)

	// background generation may still be writing history
	lobby.Wait()
	log.Println("Server has been shut down")

	return err
}
