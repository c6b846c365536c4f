package models

// Profile is the server-verified identity returned by the credential
// verification endpoint. Unlike a derived subject id, a Profile only exists
// after the server has accepted the stored credential.
type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
