package models

import "gorm.io/gorm/schema"

// All lists every persisted model, in migration order.
func All() []schema.Tabler {
	return []schema.Tabler{&Company{}, &User{}, &Visitor{}, &Alert{}}
}
