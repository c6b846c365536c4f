package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/optimistic"
	"github.com/evently/evently/internal/common"
)

func (a *App) getStatus() string {
	if p := a.session.Profile(); p != nil {
		return fmt.Sprintf("(%s)", p.Name)
	}
	return "(anonymous)"
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Evently CLI (type 'help' for commands)")
	// Share the App reader so prompts issued by commands and the command
	// loop itself never fight over buffered input.
	scanner := bufio.NewScanner(a.reader)

	for {
		fmt.Fprintf(a.out, "evently %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "login":
			_ = a.Login(ctx)
		case "signup":
			_ = a.Signup(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			a.WhoAmI(ctx)

		case "events":
			_ = a.ListEvents(ctx, models.EventFilter{})
		case "mine":
			_ = a.ListEvents(ctx, models.EventFilter{Mine: true})
		case "attending":
			_ = a.ListEvents(ctx, models.EventFilter{Attending: true})
		case "favs":
			_ = a.ListFavorites(ctx)

		case "open":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: open <event-id>")
				continue
			}
			_ = a.Open(ctx, args[0])
		case "new":
			_ = a.CreateEvent(ctx)
		case "edit":
			_ = a.EditEvent(ctx)
		case "delete":
			_ = a.DeleteEvent(ctx)
		case "attend":
			_ = a.ToggleAttend(ctx)
		case "fav":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_ = a.ToggleFavorite(ctx, id)

		case "comments":
			_ = a.ShowComments(ctx)
		case "comment":
			_ = a.AddComment(ctx, "")
		case "reply":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: reply <comment-id>")
				continue
			}
			_ = a.AddComment(ctx, args[0])
		case "like":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: like <comment-id>")
				continue
			}
			_ = a.LikeComment(ctx, args[0])
		case "rmcomment":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: rmcomment <comment-id>")
				continue
			}
			_ = a.RemoveComment(ctx, args[0])

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: events, mine, attending, favs, open <id>, new, edit, delete, attend, fav [id], comments, comment, reply <id>, like <id>, rmcomment <id>, whoami, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: events, open <id>, comments, login, signup, exit")
	}
}

// printError translates taxonomy errors into messages a person at the
// prompt can act on.
func (a *App) printError(err error) {
	switch {
	case errors.Is(err, common.ErrAuthRequired):
		fmt.Fprintln(a.out, "You need to log in first.")
	case errors.Is(err, optimistic.ErrInFlight):
		fmt.Fprintln(a.out, "Hold on - the previous action has not finished yet.")
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, "Invalid input:", err)
	case errors.Is(err, common.ErrForbidden):
		fmt.Fprintln(a.out, "Not allowed:", err)
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Not found:", err)
	case errors.Is(err, common.ErrNoConnection):
		fmt.Fprintln(a.out, "Cannot reach the server. Try again later.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
