package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/evently/evently/internal/client/comments"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/ownership"
)

func (a *App) newThread(eventID string) *comments.Thread {
	return comments.NewThread(a.api, a.session, eventID, a.logger)
}

// ShowComments prints the thread of the currently open event, replies
// indented under their parents.
func (a *App) ShowComments(ctx context.Context) error {
	if a.thread == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}
	if err := a.thread.Load(ctx); err != nil {
		a.printError(err)
		return err
	}

	list := a.thread.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No comments yet.")
		return nil
	}
	for _, c := range list {
		a.printComment(ctx, c, 0)
	}
	return nil
}

func (a *App) printComment(ctx context.Context, c *models.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	mine := ""
	if ownership.IsOwner(a.session.Identity(ctx), c.Author) {
		mine = " (you)"
	}
	liked := ""
	if c.LikedBy(a.session.Identity(ctx).SubjectID) {
		liked = " [liked]"
	}
	fmt.Fprintf(a.out, "%s%s  %s%s: %s  (%d likes)%s\n",
		indent, c.ID, c.Author.DisplayName(), mine, c.Text, c.LikeCount(), liked)
	for _, reply := range c.Replies {
		a.printComment(ctx, reply, depth+1)
	}
}

// AddComment posts a comment to the currently open event; with a parent id
// it posts a reply instead.
func (a *App) AddComment(ctx context.Context, parentID string) error {
	if a.thread == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}

	text, err := GetMultiline(a.reader, "Your comment", a.out)
	if err != nil {
		return err
	}

	if err := a.thread.Create(ctx, text, parentID); err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintln(a.out, "Posted.")
	return nil
}

// LikeComment toggles the viewer's like on the given comment.
func (a *App) LikeComment(ctx context.Context, commentID string) error {
	if a.thread == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}

	if err := a.thread.ToggleLike(ctx, commentID); err != nil {
		a.printError(err)
		return err
	}

	if c := a.thread.Get(commentID); c != nil {
		fmt.Fprintf(a.out, "%d likes.\n", c.LikeCount())
	}
	return nil
}

// RemoveComment deletes one of the viewer's own comments after server
// confirmation.
func (a *App) RemoveComment(ctx context.Context, commentID string) error {
	if a.thread == nil {
		fmt.Fprintln(a.out, "Open an event first.")
		return nil
	}

	if err := a.thread.Remove(ctx, commentID); err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintln(a.out, "Comment deleted.")
	return nil
}
