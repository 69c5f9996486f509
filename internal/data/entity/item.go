package entity

import "github.com/google/uuid"

type Item struct {
	Base
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Available   bool      `db:"available"`
	OwnerID     uuid.UUID `db:"owner_id"`
}

// IsOwnedBy reports whether userID owns the item.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.OwnerID == userID
}
