// Package comments assembles an event's comment thread from the backend's
// heterogeneous payloads and keeps the local list coherent with
// server-confirmed results. Threading is logical: comments are stored flat
// or nested as the backend sends them, linked by parent references, with no
// depth limit.
package comments

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/evently/evently/internal/client/api"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/optimistic"
	"github.com/evently/evently/internal/client/ownership"
	"github.com/evently/evently/internal/client/session"
	"github.com/evently/evently/internal/common"
	"github.com/evently/evently/internal/logging"
)

// Thread is the comment list of a single event.
type Thread struct {
	api     api.Client
	session *session.Controller
	coord   *optimistic.Coordinator
	logger  logging.Logger
	eventID string

	mu   sync.Mutex
	list []*models.Comment
}

func NewThread(apiClient api.Client, sess *session.Controller, eventID string, logger logging.Logger) *Thread {
	return &Thread{
		api:     apiClient,
		session: sess,
		coord:   optimistic.NewCoordinator(),
		logger:  logger,
		eventID: eventID,
	}
}

func (t *Thread) EventID() string {
	return t.eventID
}

// Load replaces the thread with the server's list for the event.
func (t *Thread) Load(ctx context.Context) error {
	list, err := t.api.ListComments(ctx, t.eventID)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	t.mu.Lock()
	t.list = list
	t.mu.Unlock()
	return nil
}

// List returns the current top-level comments.
func (t *Thread) List() []*models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*models.Comment, len(t.list))
	copy(out, t.list)
	return out
}

// Get finds a comment by id, searching replies recursively. Returns nil
// when the thread does not hold it.
func (t *Thread) Get(commentID string) *models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return findByID(t.list, commentID)
}

func findByID(list []*models.Comment, id string) *models.Comment {
	for _, c := range list {
		if c.ID == id {
			return c
		}
		if found := findByID(c.Replies, id); found != nil {
			return found
		}
	}
	return nil
}

// Create posts a new comment, optionally as a reply to parentID, then
// refetches the whole thread. The created record arrives without its
// expanded author, so splicing it in would render a hole where the author
// name belongs; the refetch is required behavior here, not an optimization.
//
// Empty text (after trimming) and anonymous viewers are rejected locally,
// before any network call.
func (t *Thread) Create(ctx context.Context, text, parentID string) error {
	if _, err := t.session.RequireCredential(ctx); err != nil {
		return err
	}
	clean := strings.TrimSpace(text)
	if clean == "" {
		return fmt.Errorf("%w: comment text is empty", common.ErrValidation)
	}

	input := models.CommentInput{Text: clean, EventID: t.eventID, ParentComment: parentID}
	if _, err := t.api.CreateComment(ctx, input); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return t.Load(ctx)
}

// Remove deletes one of the viewer's own comments. Deletion is
// irreversible, so there is no optimistic removal: the comment leaves the
// local list only once the server has confirmed, and a failed delete keeps
// showing a comment that still exists remotely.
func (t *Thread) Remove(ctx context.Context, commentID string) error {
	if _, err := t.session.RequireCredential(ctx); err != nil {
		return err
	}

	comment := t.Get(commentID)
	if comment == nil {
		return fmt.Errorf("%w: comment %s", common.ErrNotFound, commentID)
	}
	if !ownership.IsOwner(t.session.Identity(ctx), comment.Author) {
		return fmt.Errorf("%w: only the author may delete a comment", common.ErrForbidden)
	}

	if err := t.api.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	t.mu.Lock()
	t.list = removeByID(t.list, commentID)
	t.mu.Unlock()
	return nil
}

func removeByID(list []*models.Comment, id string) []*models.Comment {
	out := list[:0]
	for _, c := range list {
		if c.ID == id {
			continue
		}
		c.Replies = removeByID(c.Replies, id)
		out = append(out, c)
	}
	return out
}

// Busy reports an unsettled like toggle for commentID.
func (t *Thread) Busy(commentID string) bool {
	return t.coord.Busy(commentID)
}

// ToggleLike flips the viewer's like on a comment. The membership delta is
// applied locally first; on success the server's updated comment record is
// authoritative and replaces the optimistic one.
func (t *Thread) ToggleLike(ctx context.Context, commentID string) error {
	if _, err := t.session.RequireCredential(ctx); err != nil {
		return err
	}
	subject := t.session.Identity(ctx)
	if !subject.Present() {
		return common.ErrAuthRequired
	}

	comment := t.Get(commentID)
	if comment == nil {
		return fmt.Errorf("%w: comment %s", common.ErrNotFound, commentID)
	}
	liked := comment.LikedBy(subject.SubjectID)

	m := optimistic.Mutation[*models.Comment]{
		Target: commentID,
		Apply: func() {
			if liked {
				comment.RemoveLike(subject.SubjectID)
			} else {
				comment.AddLike(subject.SubjectID)
			}
		},
		Revert: func() {
			if liked {
				comment.AddLike(subject.SubjectID)
			} else {
				comment.RemoveLike(subject.SubjectID)
			}
		},
		Send: func(ctx context.Context) (*models.Comment, bool, error) {
			var updated *models.Comment
			var err error
			if liked {
				updated, err = t.api.UnlikeComment(ctx, commentID)
			} else {
				updated, err = t.api.LikeComment(ctx, commentID)
			}
			if err != nil {
				return nil, false, err
			}
			return updated, updated != nil, nil
		},
		Accept: func(updated *models.Comment) {
			t.mu.Lock()
			*comment = *updated
			t.mu.Unlock()
		},
	}
	return optimistic.Run(ctx, t.coord, m)
}
