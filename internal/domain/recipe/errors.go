package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrUnknownIngredient = errors.New("ingredient name is not in the catalog")
	ErrIndexOutOfRange   = errors.New("ingredient index out of range")
)
