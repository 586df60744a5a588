// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// App is the command-line client.
type App struct {
	adapter   adapter.ServerAdapter
	tokens    *TokenStore
	prompt    Prompt
	timeout   time.Duration
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// NewApp builds the client. timeout bounds every command except watch.
func NewApp(serverAdapter adapter.ServerAdapter, tokens *TokenStore, prompt Prompt, timeout time.Duration, buildInfo models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		adapter:   serverAdapter,
		tokens:    tokens,
		prompt:    prompt,
		timeout:   timeout,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Command returns the root command with every subcommand attached.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "notes",
		Short:         "Keep notes in sync across devices",
		Long:          "Command-line client of the notes sync server. Changes made here reach every connected device immediately.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.newRegisterCommand(),
		a.newLoginCommand(),
		a.newLogoutCommand(),
		a.newWhoAmICommand(),
		a.newVersionCommand(),
		a.newListCommand(),
		a.newWatchCommand(),
		a.newCreateCommand(),
		a.newUpdateCommand(),
		a.newDeleteCommand(),
	)

	return root
}

// authed restores the saved token pair before run and saves it again when
// the adapter refreshed it.
func (a *App) authed(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		pair, err := a.tokens.Load()
		if errors.Is(err, adapter.ErrNotLoggedIn) {
			return fmt.Errorf("%w: run login first", err)
		}
		if err != nil {
			return err
		}
		a.adapter.SetTokens(pair)

		runErr := run(cmd, args)

		if current := a.adapter.Tokens(); current != pair {
			if err = a.tokens.Save(current); err != nil {
				a.logger.Err(err).Str("func", "App.authed").Msg("failed to save refreshed tokens")
			}
		}

		return runErr
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// mutate sends one mutation frame over a fresh channel and waits for the
// echo addressed to this device.
func (a *App) mutate(ctx context.Context, name string, payload any, want models.NoteStatus) (models.Note, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	stream, err := a.adapter.OpenStream(ctx)
	if err != nil {
		return models.Note{}, err
	}
	defer func() {
		if closeErr := stream.Close(); closeErr != nil {
			a.logger.Debug().Err(closeErr).Str("func", "App.mutate").Msg("closing stream")
		}
	}()

	if err = awaitJoin(ctx, stream); err != nil {
		return models.Note{}, err
	}

	a.logger.Debug().Str("func", "App.mutate").Str("event", name).Msg("sending mutation")
	if err = stream.Send(ctx, models.Event{Name: name, Data: payload}); err != nil {
		return models.Note{}, err
	}

	return awaitEcho(ctx, stream, want)
}
