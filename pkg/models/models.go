// Package models defines the durable entities of the messaging server
// and the domain errors the stores translate into.
package models

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&User{},
		&Message{},
		&Token{},
	}
}
