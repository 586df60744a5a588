// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes-sync/models"
)

func (a *App) newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register NICKNAME",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.newPassword()
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			created, err := a.adapter.SignUp(ctx, models.Credentials{Nickname: args[0], Password: password})
			if err != nil {
				return err
			}

			NewPrinter(cmd.OutOrStdout()).Success("registered %s (%s), now run: login %s", args[0], created.ID, args[0])
			return nil
		},
	}
}

func (a *App) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login NICKNAME",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.prompt.Password("Password")
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			pair, err := a.adapter.Login(ctx, models.Credentials{Nickname: args[0], Password: password})
			if err != nil {
				return err
			}
			if err = a.tokens.Save(pair); err != nil {
				return err
			}

			NewPrinter(cmd.OutOrStdout()).Success("logged in as %s", args[0])
			return nil
		},
	}
}

func (a *App) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			NewPrinter(cmd.OutOrStdout()).Success("logged out")
			return nil
		},
	}
}

func (a *App) newWhoAmICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			user, err := a.adapter.GetUser(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), user.Nickname)
			return nil
		}),
	}
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client: %s\n", a.buildInfo)

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			info, err := a.adapter.Version(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "server: %s\n", info)
			return nil
		},
	}
}

func (a *App) newListCommand() *cobra.Command {
	var request models.ListRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first, one page at a time",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			page, err := a.adapter.ListNotes(ctx, request)
			if err != nil {
				return err
			}

			NewPrinter(cmd.OutOrStdout()).Page(page)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&request.Pattern, "pattern", "p", "", "only notes whose title or content contains this text")
	cmd.Flags().StringVarP(&request.Cursor, "cursor", "c", "", "only notes older than this timestamp (RFC 3339)")

	return cmd
}

func (a *App) newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream changes made on any device until interrupted",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			printer := NewPrinter(cmd.OutOrStdout())

			stream, err := a.adapter.OpenStream(ctx)
			if err != nil {
				return err
			}
			defer stream.Close()

			for {
				event, err := nextEvent(ctx, stream)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}

				if err = printer.Event(event); err != nil {
					a.logger.Warn().Err(err).Str("func", "App.watch").Msg("skipping event")
				}
			}
		}),
	}
}

func (a *App) newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			note, err := a.mutate(cmd.Context(), models.EventCreateNote, noteInput(cmd, ""), models.NoteCreated)
			if err != nil {
				return err
			}

			printer := NewPrinter(cmd.OutOrStdout())
			printer.Success("created")
			printer.Note(note)
			return nil
		}),
	}
	addNoteFlags(cmd)

	return cmd
}

func (a *App) newUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the title and content of a note",
		Long:  "Replace the title and content of a note. A field whose flag is not given is cleared.",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			note, err := a.mutate(cmd.Context(), models.EventUpdateNote, noteInput(cmd, args[0]), models.NoteUpdated)
			if err != nil {
				return err
			}

			printer := NewPrinter(cmd.OutOrStdout())
			printer.Success("updated")
			printer.Note(note)
			return nil
		}),
	}
	addNoteFlags(cmd)

	return cmd
}

func (a *App) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			note, err := a.mutate(cmd.Context(), models.EventDeleteNote, models.DeleteNoteRequest{NoteID: args[0]}, models.NoteDeleted)
			if err != nil {
				return err
			}

			NewPrinter(cmd.OutOrStdout()).Success("deleted %s", note.ID)
			return nil
		}),
	}
}

func addNoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "note title")
	cmd.Flags().StringP("content", "c", "", "note content")
}

// noteInput sets only the fields whose flags were given.
func noteInput(cmd *cobra.Command, id string) models.NoteInput {
	input := models.NoteInput{ID: id}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		input.Title = &title
	}
	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		input.Content = &content
	}
	return input
}

func (a *App) newPassword() (string, error) {
	password, err := a.prompt.Password("Password")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrEmptyPassword
	}

	confirm, err := a.prompt.Password("Repeat password")
	if err != nil {
		return "", err
	}
	if confirm != password {
		return "", ErrPasswordMismatch
	}

	return password, nil
}
