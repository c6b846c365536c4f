// Package api implements the typed client for the Evently REST backend:
// JSON over HTTPS, bearer-token auth, response-envelope normalization and
// mapping of transport/status failures onto the shared error taxonomy.
package api

import (
	"context"

	"github.com/evently/evently/internal/client/models"
)

// Client is the full operation surface of the backend. HTTPClient is the
// production implementation; tests embed Client in lightweight fakes and
// override only what they exercise.
type Client interface {
	Verify(ctx context.Context) (*models.Profile, error)
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, email, password, name string) error

	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, eventID string, input models.EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	JoinEvent(ctx context.Context, eventID string) error
	LeaveEvent(ctx context.Context, eventID string) error

	ListFavorites(ctx context.Context) ([]*models.Event, error)
	AddFavorite(ctx context.Context, eventID string) error
	RemoveFavorite(ctx context.Context, eventID string) error

	ListComments(ctx context.Context, eventID string) ([]*models.Comment, error)
	CreateComment(ctx context.Context, input models.CommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	LikeComment(ctx context.Context, commentID string) (*models.Comment, error)
	UnlikeComment(ctx context.Context, commentID string) (*models.Comment, error)
}
