// Package identity derives a subject identifier from the stored credential
// without a server round trip.
//
// The derivation reads the JWT claims segment without verifying the
// signature. It exists for UI convenience only ("is this comment mine");
// it must never feed an authorization decision. The server stays
// authoritative for all permissions, and a server-side permission error
// always wins over anything derived here.
package identity

import "github.com/golang-jwt/jwt/v5"

// Unverified is a subject claim taken from an unverified token. The type is
// deliberately distinct from models.Profile so an unverified value cannot
// be passed where server-verified identity is required.
type Unverified struct {
	SubjectID string
}

// Present reports whether a subject was derived.
func (u Unverified) Present() bool {
	return u.SubjectID != ""
}

// subjectAliases are the accepted claim names, in precedence order.
var subjectAliases = []string{"_id", "id", "userId"}

// Derive extracts the subject id from token. Malformed input of any kind —
// wrong segment count, bad base64, bad JSON, missing or non-string claim —
// yields a zero Unverified, never an error or panic.
func Derive(token string) Unverified {
	if token == "" {
		return Unverified{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Unverified{}
	}

	for _, alias := range subjectAliases {
		if v, ok := claims[alias]; ok {
			if s, ok := v.(string); ok && s != "" {
				return Unverified{SubjectID: s}
			}
		}
	}
	return Unverified{}
}
