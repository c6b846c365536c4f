// Package ownership gates edit/delete affordances by comparing the locally
// derived identity with a resource's creator or author reference.
//
// The check is advisory: the server independently rejects unauthorized
// mutations, and its verdict wins over a local "owner" result.
package ownership

import (
	"github.com/evently/evently/internal/client/identity"
	"github.com/evently/evently/internal/client/models"
)

// IsOwner reports whether the derived subject matches ref. It is false
// whenever either side is absent, regardless of the other.
func IsOwner(id identity.Unverified, ref models.Ref) bool {
	if !id.Present() || ref.IsZero() {
		return false
	}
	return id.SubjectID == ref.ID
}
