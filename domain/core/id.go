package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// contentNamespace scopes content-derived IDs so they never collide with
// identifiers minted elsewhere under the standard namespaces.
var contentNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("resultdash/content"))

// NewContentID derives a stable identifier from content. Equal content
// always yields the same ID.
func NewContentID(content []byte) ID {
	return ID(uuid.NewSHA1(contentNamespace, content).String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}
