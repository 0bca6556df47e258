/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

import "github.com/suparena/entitydb/record"

// Collectible is the contract every Collection element satisfies.
type Collectible interface {
	// ID returns the element's identifier, nil when it has none yet.
	ID() any

	// ToArray returns the element's fields as an ordered record.
	ToArray() *record.Record
}

// Model is implemented by *Entity and by every custom entity type that
// embeds *Entity.
type Model interface {
	Collectible

	// Base returns the embedded generic entity.
	Base() *Entity
}
