package plan

import (
	"github.com/google/uuid"
)

// namespace scopes item IDs to this application.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chazu/drillscene/plan"))

// ItemID is a content-addressed identifier: a name-based (version 5) UUID
// over the item kind and name. Re-evaluating the same script yields the
// same IDs.
type ItemID uuid.UUID

// NewItemID derives the ID for an item of the given kind and name.
func NewItemID(kind ItemKind, name string) ItemID {
	return ItemID(uuid.NewSHA1(namespace, []byte(kind.String()+"/"+name)))
}

// IsZero reports whether the ID is unset.
func (id ItemID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id ItemID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first 8 hex characters, for messages.
func (id ItemID) Short() string {
	return id.String()[:8]
}

// MarshalText encodes the ID in canonical UUID form.
func (id ItemID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText decodes a canonical UUID.
func (id *ItemID) UnmarshalText(text []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(text); err != nil {
		return err
	}
	*id = ItemID(u)
	return nil
}
