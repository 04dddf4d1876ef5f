package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/common/uuid"
	historyRepo "github.com/KirkDiggler/promptgen/internal/repositories/history"
	userRepo "github.com/KirkDiggler/promptgen/internal/repositories/user"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/spf13/cobra"
)

const timeLayout = time.DateTime

// withStores opens the configured backend for the duration of fn
func withStores(cmd *cobra.Command, cfg *Config, fn func(st *stores) error) error {
	st, err := openStores(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.close()

	return fn(st)
}

func newUsersCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, cfg, func(st *stores) error {
				out, err := st.users.ListUsers(cmd.Context(), &userRepo.ListUsersInput{})
				if err != nil {
					return err
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "ID\tNAME\tREGISTERED")
				for _, user := range out.Users {
					fmt.Fprintf(w, "%s\t%s\t%s\n", user.ID, user.Name, user.CreatedAt.Local().Format(timeLayout))
				}
				return w.Flush()
			})
		},
	}
}

func newGamesCmd(cfg *Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List recent games, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, cfg, func(st *stores) error {
				out, err := st.history.ListGames(cmd.Context(), &historyRepo.ListGamesInput{
					Limit: limit,
				})
				if err != nil {
					return err
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "ID\tPLAYERS\tROUNDS\tWINNER\tSTARTED")
				for _, g := range out.Games {
					fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
						g.ID, g.Players, g.MaxRounds, winnerLabel(g.WinnerName, g.WinnerID), g.CreatedAt.Local().Format(timeLayout))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of games to list, zero lists all")

	return cmd
}

func newGameCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "game <id>",
		Short: "Show a game with its players and prompts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, cfg, func(st *stores) error {
				out, err := st.history.GetGame(cmd.Context(), &historyRepo.GetGameInput{
					GameID: args[0],
				})
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				g := out.Game
				fmt.Fprintf(stdout, "Game %s\n", g.ID)
				fmt.Fprintf(stdout, "Started:  %s\n", g.CreatedAt.Local().Format(timeLayout))
				if g.Finished() {
					fmt.Fprintf(stdout, "Finished: %s\n", g.FinishedAt.Local().Format(timeLayout))
				}
				fmt.Fprintf(stdout, "Winner:   %s\n\n", winnerLabel(g.WinnerName, g.WinnerID))

				w := newTable(stdout)
				fmt.Fprintln(w, "PLAYER\tJOINED")
				for _, p := range out.Participants {
					fmt.Fprintf(w, "%s\t%s\n", nameOrID(p.UserName, p.UserID), p.JoinedAt.Local().Format(timeLayout))
				}
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Fprintln(stdout)
				w = newTable(stdout)
				fmt.Fprintln(w, "PROMPT\tROUND\tPLAYER\tTEXT\tASSET")
				for _, p := range out.Prompts {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", p.ID, p.Round+1, nameOrID(p.UserName, p.UserID), p.Text, p.AssetRef)
				}
				return w.Flush()
			})
		},
	}
}

func newPromptCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <id>",
		Short: "Show a prompt and the image generated from it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, cfg, func(st *stores) error {
				p, err := st.history.GetPrompt(cmd.Context(), &historyRepo.GetPromptInput{
					PromptID: args[0],
				})
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Prompt:  %s\n", p.ID)
				fmt.Fprintf(stdout, "Game:    %s (round %d)\n", p.GameID, p.Round+1)
				fmt.Fprintf(stdout, "Player:  %s\n", nameOrID(p.UserName, p.UserID))
				fmt.Fprintf(stdout, "Written: %s\n", p.CreatedAt.Local().Format(timeLayout))
				fmt.Fprintf(stdout, "Text:    %s\n", p.Text)
				if p.AssetRef == "" {
					fmt.Fprintln(stdout, "Asset:   (not generated)")
				} else {
					fmt.Fprintf(stdout, "Asset:   %s\n", p.AssetRef)
				}
				return nil
			})
		},
	}
}

func newRegisterCmd(cfg *Config) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}

			return withStores(cmd, cfg, func(st *stores) error {
				svc, err := identity.New(&identity.Config{
					UserRepo:      st.users,
					Clock:         clock.New(),
					UUIDGenerator: uuid.New(),
				})
				if err != nil {
					return err
				}

				out, err := svc.Register(cmd.Context(), &identity.RegisterInput{
					Username: args[0],
					Password: password,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", out.User.Name, out.User.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password for the new user")

	return cmd
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func winnerLabel(name, id string) string {
	if id == "" {
		return "-"
	}
	return nameOrID(name, id)
}

func nameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
