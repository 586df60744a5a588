// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-notes-sync/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Printer renders notes and channel events for a terminal. Styles degrade
// to plain text when out is not a terminal.
type Printer struct {
	out io.Writer

	idStyle      lipgloss.Style
	titleStyle   lipgloss.Style
	faintStyle   lipgloss.Style
	statusStyles map[models.NoteStatus]lipgloss.Style
	okStyle      lipgloss.Style
	errorStyle   lipgloss.Style
}

func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)

	return &Printer{
		out:        out,
		idStyle:    r.NewStyle().Foreground(lipgloss.Color("6")),
		titleStyle: r.NewStyle().Bold(true),
		faintStyle: r.NewStyle().Faint(true),
		statusStyles: map[models.NoteStatus]lipgloss.Style{
			models.NoteCreated: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			models.NoteUpdated: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			models.NoteDeleted: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
		okStyle:    r.NewStyle().Foreground(lipgloss.Color("2")),
		errorStyle: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Note prints one note as a header line followed by its fields.
func (p *Printer) Note(note models.Note) {
	fmt.Fprintf(p.out, "%s  %s\n", p.idStyle.Render(note.ID), p.faintStyle.Render(formatTimestamp(note.Timestamp)))
	if note.Title != nil {
		fmt.Fprintf(p.out, "  %s\n", p.titleStyle.Render(*note.Title))
	}
	if note.Content != nil {
		fmt.Fprintf(p.out, "  %s\n", *note.Content)
	}
}

// Page prints a page of notes and how to fetch the next one.
func (p *Printer) Page(page models.Page) {
	if len(page.Notes) == 0 {
		fmt.Fprintln(p.out, p.faintStyle.Render("no notes"))
		return
	}

	for i, note := range page.Notes {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		p.Note(note)
	}

	if page.IsEnd {
		fmt.Fprintln(p.out, p.faintStyle.Render("-- end of notes --"))
		return
	}

	last := page.Notes[len(page.Notes)-1]
	fmt.Fprintln(p.out, p.faintStyle.Render("-- more: --cursor "+last.Timestamp.Format(time.RFC3339Nano)+" --"))
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.okStyle.Render(fmt.Sprintf(format, args...)))
}

// Failure prints err as an error line.
func (p *Printer) Failure(err error) {
	fmt.Fprintln(p.out, p.errorStyle.Render("error: "+err.Error()))
}

// Change prints a note change tagged with its status.
func (p *Printer) Change(status models.NoteStatus, note models.Note, origin string) {
	line := fmt.Sprintf("%s %s", p.status(status), p.idStyle.Render(note.ID))
	if note.Title != nil {
		line += " " + p.titleStyle.Render(*note.Title)
	}
	if origin != "" {
		line += " " + p.faintStyle.Render("("+origin+")")
	}
	fmt.Fprintln(p.out, line)
}

// Event prints one inbound channel frame.
func (p *Printer) Event(event models.InboundEvent) error {
	switch event.Name {
	case models.EventJoinRoom:
		fmt.Fprintln(p.out, p.faintStyle.Render("joined, waiting for changes"))

	case models.EventGlobal, models.EventLocal:
		var change models.NoteEvent
		if err := json.Unmarshal(event.Data, &change); err != nil {
			return fmt.Errorf("decode %s event: %w", event.Name, err)
		}
		p.Change(change.Status, change.Note, changeOrigin(event.Name, change))

	case models.EventLocalError:
		var localErr models.LocalError
		if err := json.Unmarshal(event.Data, &localErr); err != nil {
			return fmt.Errorf("decode %s event: %w", event.Name, err)
		}
		p.Failure(fmt.Errorf("%s failed: %s (%d)", operation(localErr.Data.Status), localErr.Message, localErr.Status))

	case models.EventGlobalError:
		var globalErr models.GlobalError
		if err := json.Unmarshal(event.Data, &globalErr); err != nil {
			return fmt.Errorf("decode %s event: %w", event.Name, err)
		}
		p.Failure(fmt.Errorf("%s (%d)", globalErr.Message, globalErr.Status))

	case models.EventNotes:
		var page models.Page
		if err := json.Unmarshal(event.Data, &page); err != nil {
			return fmt.Errorf("decode %s event: %w", event.Name, err)
		}
		p.Page(page)

	default:
		fmt.Fprintln(p.out, p.faintStyle.Render("unknown event "+event.Name))
	}

	return nil
}

func (p *Printer) status(status models.NoteStatus) string {
	style, ok := p.statusStyles[status]
	if !ok {
		style = p.faintStyle
	}
	return style.Render(fmt.Sprintf("[%s]", status))
}

func changeOrigin(name string, change models.NoteEvent) string {
	if change.IsDeleteOrigin != nil {
		if *change.IsDeleteOrigin {
			return "this device"
		}
		return "another device"
	}
	if name == models.EventLocal {
		return "this device"
	}
	return ""
}

func operation(status models.NoteStatus) string {
	switch status {
	case models.NoteCreated:
		return "create"
	case models.NoteUpdated:
		return "update"
	case models.NoteDeleted:
		return "delete"
	case models.NotesListed:
		return "list"
	default:
		return string(status)
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timestampLayout)
}
