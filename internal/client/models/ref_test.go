package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Ref
	}{
		{"bare id", `"u1"`, Ref{ID: "u1"}},
		{"expanded with _id", `{"_id":"u1","name":"Ada","email":"ada@x.io"}`, Ref{ID: "u1", Name: "Ada", Email: "ada@x.io"}},
		{"expanded with id", `{"id":"u1","name":"Ada"}`, Ref{ID: "u1", Name: "Ada"}},
		{"_id wins over id", `{"_id":"a","id":"b"}`, Ref{ID: "a"}},
		{"null", `null`, Ref{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			require.Equal(t, tt.want, r)
		})
	}
}

func TestRefMarshal_BareID(t *testing.T) {
	data, err := json.Marshal(Ref{ID: "u1", Name: "Ada"})
	require.NoError(t, err)
	require.JSONEq(t, `"u1"`, string(data))
}

func TestRefDisplayName(t *testing.T) {
	require.Equal(t, "Ada", Ref{ID: "u1", Name: "Ada", Email: "a@x.io"}.DisplayName())
	require.Equal(t, "a@x.io", Ref{ID: "u1", Email: "a@x.io"}.DisplayName())
	require.Equal(t, "u1", Ref{ID: "u1"}.DisplayName())
	require.True(t, Ref{}.IsZero())
}

func TestEventAttendees(t *testing.T) {
	e := Event{Attendees: []Ref{{ID: "u1"}}}

	require.True(t, e.HasAttendee("u1"))
	require.False(t, e.HasAttendee("u2"))
	require.False(t, e.HasAttendee(""))

	e.AddAttendee("u1")
	require.Len(t, e.Attendees, 1)

	e.AddAttendee("u2")
	require.True(t, e.HasAttendee("u2"))

	e.RemoveAttendee("u1")
	require.False(t, e.HasAttendee("u1"))
	require.Len(t, e.Attendees, 1)
}
