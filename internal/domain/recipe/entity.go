// Package recipe contains the core domain logic for baker's-percentage
// recipes: the ingredient catalog, the Recipe value type, and the pure
// scaling engine that converts between percentages and gram weights.
package recipe

// Ingredient is a single recipe line: a catalog name and its baker's
// percentage relative to total flour weight. Ingredients are owned by
// their containing Recipe and have no identity beyond position.
type Ingredient struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// NewIngredient builds an ingredient from a catalog name. Unknown names
// are rejected so that invalid identities are unrepresentable; negative
// percentages are clamped to zero.
func NewIngredient(name string, percentage float64) (Ingredient, error) {
	if _, ok := LookupIngredient(name); !ok {
		return Ingredient{}, ErrUnknownIngredient
	}
	if percentage < 0 {
		percentage = 0
	}
	return Ingredient{Name: name, Percentage: percentage}, nil
}

// Recipe is the aggregate the application works with. It is a plain
// value: mutation operations in scaling.go return a new Recipe rather
// than editing in place, so a saved copy and an edited copy never alias.
type Recipe struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	TotalFlourGrams float64      `json:"totalFlourGrams"`
	Ingredients     []Ingredient `json:"ingredients"`
	IsStandard      bool         `json:"isStandard,omitempty"`
}

// Clone returns a deep copy with its own ingredient slice.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	return out
}

// Equal reports structural equality. The presentation layer uses it as
// its "has this changed from the saved version" check.
func (r Recipe) Equal(other Recipe) bool {
	if r.ID != other.ID ||
		r.Name != other.Name ||
		r.Description != other.Description ||
		r.TotalFlourGrams != other.TotalFlourGrams ||
		r.IsStandard != other.IsStandard ||
		len(r.Ingredients) != len(other.Ingredients) {
		return false
	}
	for i := range r.Ingredients {
		if r.Ingredients[i] != other.Ingredients[i] {
			return false
		}
	}
	return true
}

// IsEditable reports whether mutation operations apply. Standard recipes
// are immutable from the user's perspective and the editing surface must
// not offer controls for them.
func (r Recipe) IsEditable() bool {
	return !r.IsStandard
}
