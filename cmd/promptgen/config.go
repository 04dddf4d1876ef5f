package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	storeSQLite = "sqlite"
	storeRedis  = "redis"
)

// Config holds every flag of the binary
type Config struct {
	// storage, shared by every subcommand
	store         string
	dbPath        string
	redisAddr     string
	redisPassword string
	redisDB       int

	// serve
	bind              string
	port              int
	publicURL         string
	allowOrigin       string
	players           int
	maxRounds         int
	autoAdvance       bool
	generationTimeout time.Duration
	imageConcurrency  int
	verbose           bool
}

func (c *Config) validateStore() error {
	switch c.store {
	case storeSQLite:
		if c.dbPath == "" {
			return errors.New("--db-path is required for the sqlite store")
		}
	case storeRedis:
		if c.redisAddr == "" {
			return errors.New("--redis-addr is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store %q (must be sqlite or redis)", c.store)
	}
	return nil
}

func (c *Config) validateServe() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.players < round.MinPlayers {
		return fmt.Errorf("invalid players (must be at least %d): %d", round.MinPlayers, c.players)
	}
	if c.maxRounds < 1 {
		return fmt.Errorf("invalid max rounds (must be positive): %d", c.maxRounds)
	}
	if c.generationTimeout < 0 {
		return fmt.Errorf("invalid generation timeout (must not be negative): %s", c.generationTimeout)
	}
	if c.imageConcurrency < 0 {
		return fmt.Errorf("invalid image concurrency (must not be negative): %d", c.imageConcurrency)
	}
	return nil
}

func newRootCmd(cfg *Config) *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:           "promptgen",
		Short:         "A prompt-and-vote image party game.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
	}

	fs := cmd.PersistentFlags()
	normalizeFlags(fs)

	fs.StringVar(&cfg.store, "store", storeSQLite, "storage backend, sqlite or redis (env: PROMPTGEN_STORE)")
	fs.StringVar(&cfg.dbPath, "db-path", "promptgen.db", "path to the sqlite database (env: PROMPTGEN_DB_PATH)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "localhost:6379", "redis address (env: PROMPTGEN_REDIS_ADDR)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: PROMPTGEN_REDIS_PASSWORD)")
	fs.IntVar(&cfg.redisDB, "redis-db", 0, "redis database number (env: PROMPTGEN_REDIS_DB)")

	bindFlags(v, fs)

	cmd.AddCommand(
		newServeCmd(cfg, v),
		newUsersCmd(cfg),
		newGamesCmd(cfg),
		newGameCmd(cfg),
		newPromptCmd(cfg),
		newRegisterCmd(cfg),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("promptgen v{{.Version}}\n")

	return cmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PROMPTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func normalizeFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
}

// bindFlags lets PROMPTGEN_* variables set any flag not given on the command line
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
