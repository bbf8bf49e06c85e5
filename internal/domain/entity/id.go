package entity

import "github.com/google/uuid"

// IsValidID indica si id es un UUID; las columnas id de PostgreSQL son de tipo UUID.
func IsValidID(id string) bool {
	return uuid.Validate(id) == nil
}
