package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/evently/evently/internal/client/models"
)

// ListEvents prints one line per event; favorites carry a star when the
// favorite set has been loaded.
func (a *App) ListEvents(ctx context.Context, filter models.EventFilter) error {
	list, err := a.events.List(ctx, filter)
	if err != nil {
		a.printError(err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No events.")
		return nil
	}
	for _, ev := range list {
		marker := " "
		if a.favorites.Contains(ev.ID) {
			marker = "*"
		}
		visibility := "public"
		if !ev.IsPublic {
			visibility = "private"
		}
		fmt.Fprintf(a.out, "%s %s  %-30s %s  %s (%d attending)\n",
			marker, ev.ID, ev.Title, ev.Date.Format("2006-01-02 15:04"), visibility, len(ev.Attendees))
	}
	return nil
}

// ListFavorites reloads the favorite set wholesale and prints it.
func (a *App) ListFavorites(ctx context.Context) error {
	if err := a.favorites.Load(ctx); err != nil {
		a.printError(err)
		return err
	}

	list := a.favorites.Events()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No favorites yet.")
		return nil
	}
	for _, ev := range list {
		fmt.Fprintf(a.out, "* %s  %s\n", ev.ID, ev.Title)
	}
	return nil
}

// Open fetches an event, makes it current and loads its comment thread.
func (a *App) Open(ctx context.Context, eventID string) error {
	ev, err := a.events.Get(ctx, eventID)
	if err != nil {
		a.printError(err)
		return err
	}

	a.current = ev
	a.thread = a.newThread(eventID)
	if err := a.thread.Load(ctx); err != nil {
		a.logger.Warn(ctx, "loading comments failed", "event_id", eventID, "error", err)
	}

	a.printEvent(ctx, ev)
	return nil
}

func (a *App) printEvent(ctx context.Context, ev *models.Event) {
	visibility := "public"
	if !ev.IsPublic {
		visibility = "private"
	}
	fmt.Fprintf(a.out, "%s (%s)\n", ev.Title, visibility)
	if ev.Description != "" {
		fmt.Fprintln(a.out, ev.Description)
	}
	if ev.Location != "" {
		fmt.Fprintln(a.out, "Where:", ev.Location)
	}
	if !ev.Date.IsZero() {
		fmt.Fprintln(a.out, "When:", ev.Date.Format("2006-01-02 15:04"))
	}
	if !ev.CreatedBy.IsZero() {
		fmt.Fprintln(a.out, "Created by:", ev.CreatedBy.DisplayName())
	}
	fmt.Fprintf(a.out, "Attendees: %d\n", len(ev.Attendees))

	if a.isLoggedIn() {
		if a.events.IsAttending(ctx, ev) {
			fmt.Fprintln(a.out, "You are attending.")
		}
		if a.favorites.Contains(ev.ID) {
			fmt.Fprintln(a.out, "In your favorites.")
		}
		if a.events.CanEdit(ctx, ev) {
			fmt.Fprintln(a.out, "You created this event (edit/delete available).")
		}
	}
	if a.thread != nil {
		fmt.Fprintf(a.out, "Comments: %d (use 'comments' to read)\n", len(a.thread.List()))
	}
}

// CreateEvent prompts for the event fields and creates it.
func (a *App) CreateEvent(ctx context.Context) error {
	input, err := a.promptEventInput(models.EventInput{})
	if err != nil {
		return err
	}

	ev, err := a.events.Create(ctx, input)
	if err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintln(a.out, "Created event", ev.ID)
	return nil
}

// EditEvent updates the currently open event.
func (a *App) EditEvent(ctx context.Context) error {
	if a.current == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}

	seed := models.EventInput{
		Title:       a.current.Title,
		Description: a.current.Description,
		Location:    a.current.Location,
		Date:        a.current.Date,
		IsPublic:    a.current.IsPublic,
	}
	input, err := a.promptEventInput(seed)
	if err != nil {
		return err
	}

	ev, err := a.events.Update(ctx, a.current, input)
	if err != nil {
		a.printError(err)
		return err
	}
	a.current = ev
	fmt.Fprintln(a.out, "Updated.")
	return nil
}

// DeleteEvent deletes the currently open event.
func (a *App) DeleteEvent(ctx context.Context) error {
	if a.current == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}

	confirm, err := getSimpleText(a.reader, "Type the event title to confirm deletion", a.out)
	if err != nil {
		return err
	}
	if confirm != a.current.Title {
		fmt.Fprintln(a.out, "Titles do not match; nothing deleted.")
		return nil
	}

	if err := a.events.Delete(ctx, a.current); err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	a.current = nil
	a.thread = nil
	return nil
}

// ToggleAttend joins or leaves the currently open event.
func (a *App) ToggleAttend(ctx context.Context) error {
	if a.current == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}

	if err := a.events.ToggleAttend(ctx, a.current); err != nil {
		a.printError(err)
		return err
	}
	if a.events.IsAttending(ctx, a.current) {
		fmt.Fprintf(a.out, "You are attending (%d total).\n", len(a.current.Attendees))
	} else {
		fmt.Fprintf(a.out, "You left the event (%d attending).\n", len(a.current.Attendees))
	}
	return nil
}

func (a *App) promptEventInput(seed models.EventInput) (models.EventInput, error) {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return seed, err
	}
	if title != "" {
		seed.Title = title
	}

	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return seed, err
	}
	if description != "" {
		seed.Description = description
	}

	location, err := getSimpleText(a.reader, "Location", a.out)
	if err != nil {
		return seed, err
	}
	if location != "" {
		seed.Location = location
	}

	dateText, err := getSimpleText(a.reader, "Date (2006-01-02 15:04)", a.out)
	if err != nil {
		return seed, err
	}
	if dateText != "" {
		date, err := time.Parse("2006-01-02 15:04", dateText)
		if err != nil {
			fmt.Fprintln(a.out, "Unrecognized date, keeping previous value.")
		} else {
			seed.Date = date
		}
	}

	public, err := getSimpleText(a.reader, "Public? (y/n)", a.out)
	if err != nil {
		return seed, err
	}
	if public != "" {
		seed.IsPublic = public == "y" || public == "yes"
	}
	return seed, nil
}
