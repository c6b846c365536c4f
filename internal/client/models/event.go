package models

import "time"

// Event is a read-only record from the client's perspective: the attendee
// list is only ever mutated locally as an optimistic delta, and the
// authoritative list comes back from a refetch.
type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	IsPublic    bool      `json:"isPublic"`
	CreatedBy   Ref       `json:"createdBy"`
	Attendees   []Ref     `json:"attendees"`
}

// HasAttendee reports whether subjectID is a member of the attendee list.
// The attendance flag is always derived this way, never stored.
func (e *Event) HasAttendee(subjectID string) bool {
	if subjectID == "" {
		return false
	}
	for _, a := range e.Attendees {
		if a.ID == subjectID {
			return true
		}
	}
	return false
}

func (e *Event) AddAttendee(subjectID string) {
	if e.HasAttendee(subjectID) {
		return
	}
	e.Attendees = append(e.Attendees, Ref{ID: subjectID})
}

func (e *Event) RemoveAttendee(subjectID string) {
	out := e.Attendees[:0]
	for _, a := range e.Attendees {
		if a.ID != subjectID {
			out = append(out, a)
		}
	}
	e.Attendees = out
}

// EventInput is the payload for event create/update.
type EventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        time.Time `json:"date"`
	IsPublic    bool      `json:"isPublic"`
}

// EventFilter narrows a list fetch to the viewer's own or attended events.
// Both filters require an authenticated viewer.
type EventFilter struct {
	Mine      bool
	Attending bool
}
