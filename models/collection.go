package models

import "time"

// Collection is a user-named grouping of vault items.
type Collection struct {
	// ID is the locally generated unique identifier of the collection.
	ID string `json:"id"`

	// Name is the user-chosen name, stored trimmed.
	Name string `json:"name"`

	// Description is optional; blank input is stored as absent, not as an
	// empty string.
	Description *string `json:"description,omitempty"`

	// ItemIDs is the ordered sequence of member item ids. Duplicates are
	// forbidden; order is the order items were added.
	ItemIDs []string `json:"itemIds"`

	// CreatedAt is the creation time. Immutable.
	CreatedAt time.Time `json:"createdAt"`
}

// Contains reports whether the collection references the given item id.
func (c Collection) Contains(itemID string) bool {
	for _, id := range c.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// CollectionUpdate is a partial patch for renaming or re-describing a
// collection. Nil fields are left untouched.
type CollectionUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
