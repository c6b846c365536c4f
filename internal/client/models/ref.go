// Package models defines the client-side records for the Evently API and
// the decoding rules that normalize the backend's heterogeneous payload
// shapes into canonical values.
package models

import "encoding/json"

// Ref is a reference to a user. On the wire it arrives either as a bare
// identifier ("66ab…") or as an expanded object ({"_id": "66ab…",
// "name": "Ada", …}). Both shapes normalize to ID; Name and Email survive
// only when the backend expanded the reference.
type Ref struct {
	ID    string
	Name  string
	Email string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.ID = s
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.MongoID
	if r.ID == "" {
		r.ID = obj.ID
	}
	r.Name = obj.Name
	r.Email = obj.Email
	return nil
}

// MarshalJSON writes the bare identifier; the expanded form is something
// only the backend produces.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// IsZero reports whether the reference carries no identifier.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// DisplayName picks the best human-readable label the reference carries.
func (r Ref) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Email != "":
		return r.Email
	default:
		return r.ID
	}
}
