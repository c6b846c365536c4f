// Package events wraps event CRUD, the mine/attending list filters and the
// attendance toggle.
package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/evently/evently/internal/client/api"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/optimistic"
	"github.com/evently/evently/internal/client/ownership"
	"github.com/evently/evently/internal/client/session"
	"github.com/evently/evently/internal/common"
	"github.com/evently/evently/internal/logging"
)

type Service struct {
	api     api.Client
	session *session.Controller
	coord   *optimistic.Coordinator
	logger  logging.Logger
}

func NewService(apiClient api.Client, sess *session.Controller, logger logging.Logger) *Service {
	return &Service{
		api:     apiClient,
		session: sess,
		coord:   optimistic.NewCoordinator(),
		logger:  logger,
	}
}

// List fetches events. The public list is open to anonymous viewers; the
// mine/attending filters are scoped to the current subject and require a
// credential.
func (s *Service) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	if filter.Mine || filter.Attending {
		if _, err := s.session.RequireCredential(ctx); err != nil {
			return nil, err
		}
	}
	return s.api.ListEvents(ctx, filter)
}

func (s *Service) Get(ctx context.Context, eventID string) (*models.Event, error) {
	return s.api.GetEvent(ctx, eventID)
}

func (s *Service) Create(ctx context.Context, input models.EventInput) (*models.Event, error) {
	if _, err := s.session.RequireCredential(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: event title is empty", common.ErrValidation)
	}
	return s.api.CreateEvent(ctx, input)
}

func (s *Service) Update(ctx context.Context, event *models.Event, input models.EventInput) (*models.Event, error) {
	if _, err := s.session.RequireCredential(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: event title is empty", common.ErrValidation)
	}
	if !s.CanEdit(ctx, event) {
		return nil, fmt.Errorf("%w: only the creator may edit an event", common.ErrForbidden)
	}
	return s.api.UpdateEvent(ctx, event.ID, input)
}

func (s *Service) Delete(ctx context.Context, event *models.Event) error {
	if _, err := s.session.RequireCredential(ctx); err != nil {
		return err
	}
	if !s.CanEdit(ctx, event) {
		return fmt.Errorf("%w: only the creator may delete an event", common.ErrForbidden)
	}
	return s.api.DeleteEvent(ctx, event.ID)
}

// CanEdit reports whether the viewer may edit or delete the event.
// Advisory only; the server's verdict wins.
func (s *Service) CanEdit(ctx context.Context, event *models.Event) bool {
	return ownership.IsOwner(s.session.Identity(ctx), event.CreatedBy)
}

// IsAttending derives the flag from attendee membership; it is never
// stored separately.
func (s *Service) IsAttending(ctx context.Context, event *models.Event) bool {
	return event.HasAttendee(s.session.Identity(ctx).SubjectID)
}

// Busy reports an unsettled attendance toggle for eventID.
func (s *Service) Busy(eventID string) bool {
	return s.coord.Busy(eventID)
}

// ToggleAttend joins or leaves the event. Membership is applied
// optimistically for instant feedback, but the attendee list drives a
// displayed count, so a successful mutation is followed by a refetch and
// the fresh record replaces the local one. On failure the pre-toggle
// membership is restored exactly.
func (s *Service) ToggleAttend(ctx context.Context, event *models.Event) error {
	if _, err := s.session.RequireCredential(ctx); err != nil {
		return err
	}
	subject := s.session.Identity(ctx)
	if !subject.Present() {
		return common.ErrAuthRequired
	}

	attending := event.HasAttendee(subject.SubjectID)

	m := optimistic.Mutation[*models.Event]{
		Target: event.ID,
		Apply: func() {
			if attending {
				event.RemoveAttendee(subject.SubjectID)
			} else {
				event.AddAttendee(subject.SubjectID)
			}
		},
		Revert: func() {
			if attending {
				event.AddAttendee(subject.SubjectID)
			} else {
				event.RemoveAttendee(subject.SubjectID)
			}
		},
		Send: func(ctx context.Context) (*models.Event, bool, error) {
			var err error
			if attending {
				err = s.api.LeaveEvent(ctx, event.ID)
			} else {
				err = s.api.JoinEvent(ctx, event.ID)
			}
			if err != nil {
				return nil, false, err
			}

			fresh, err := s.api.GetEvent(ctx, event.ID)
			if err != nil {
				// The mutation itself succeeded; keep the optimistic state
				// and let the next fetch reconcile the count.
				s.logger.Warn(ctx, "refetch after attendance toggle failed",
					"event_id", event.ID, "error", err)
				return nil, false, nil
			}
			return fresh, true, nil
		},
		Accept: func(fresh *models.Event) {
			*event = *fresh
		},
	}
	return optimistic.Run(ctx, s.coord, m)
}
