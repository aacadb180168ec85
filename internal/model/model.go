// Package model is the schema registry: the canonical descriptors of the persisted
// entities, their insert validators and the Go types of a fully populated row.
package model

import (
	"fmt"

	"docstore/internal/schema"
)

// Tables returns every registered descriptor in bootstrap order.
func Tables() []*schema.Table {
	return []*schema.Table{Users, Documents}
}

// mustConform panics when a row struct drifts from its descriptor.
func mustConform(t *schema.Table, row any) {
	if err := schema.Conforms(t, row); err != nil {
		panic(fmt.Sprintf("model: %T does not match table %s: %v", row, t.Name(), err))
	}
}

func init() {
	mustConform(Users, User{})
	mustConform(Documents, Document{})
}
