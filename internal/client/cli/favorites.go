package cli

import (
	"context"
	"fmt"
)

// ToggleFavorite flips the favorite state of the given event id, defaulting
// to the currently open event.
func (a *App) ToggleFavorite(ctx context.Context, eventID string) error {
	if eventID == "" {
		if a.current == nil {
			fmt.Fprintln(a.out, "Open an event first or pass an id: fav <event-id>")
			return nil
		}
		eventID = a.current.ID
	}

	if err := a.favorites.Toggle(ctx, eventID); err != nil {
		a.printError(err)
		return err
	}

	if a.favorites.Contains(eventID) {
		fmt.Fprintln(a.out, "Added to favorites.")
	} else {
		fmt.Fprintln(a.out, "Removed from favorites.")
	}
	return nil
}
