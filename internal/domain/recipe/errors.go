package recipe

import "errors"

// Recipe reference-data errors
var (
	ErrInvalidCategory = errors.New("invalid meal category")
	ErrNotFound        = errors.New("recipe not found")
)
