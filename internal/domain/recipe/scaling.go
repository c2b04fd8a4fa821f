package recipe

// Scaling engine: pure transformations between the percentage-based
// representation and absolute gram weights. Every operation is a
// function of its explicit inputs and returns a fresh Recipe value;
// there is no hidden state and no locking.

// IngredientGrams converts one line to grams:
// (percentage / 100) * totalFlourGrams. The result may be zero.
func IngredientGrams(r Recipe, ing Ingredient) float64 {
	return ing.Percentage / 100 * r.TotalFlourGrams
}

// SumPercentages totals every ingredient percentage, flour or not.
func SumPercentages(r Recipe) float64 {
	var sum float64
	for _, ing := range r.Ingredients {
		sum += ing.Percentage
	}
	return sum
}

// FlourPercentage totals the percentages of Flour-category lines. A
// dimensionally consistent recipe has this equal to 100.
func FlourPercentage(r Recipe) float64 {
	var sum float64
	for _, ing := range r.Ingredients {
		if cat, ok := CategoryOf(ing.Name); ok && cat == CategoryFlour {
			sum += ing.Percentage
		}
	}
	return sum
}

// TotalDoughWeight derives the total dough weight,
// (sum of percentages / 100) * totalFlourGrams. Never stored; always
// recomputed from the recipe value.
func TotalDoughWeight(r Recipe) float64 {
	return SumPercentages(r) / 100 * r.TotalFlourGrams
}

// RescaleToDoughWeight back-solves totalFlourGrams so the recipe's
// derived dough weight equals target, holding every percentage fixed.
// Negative targets are clamped to zero. When the percentage sum is zero
// there is no defined scaling factor and the input is returned
// unchanged.
func RescaleToDoughWeight(r Recipe, target float64) Recipe {
	sum := SumPercentages(r)
	if sum == 0 {
		return r
	}
	if target < 0 {
		target = 0
	}
	out := r.Clone()
	out.TotalFlourGrams = target / sum * 100
	return out
}

// SetIngredientPercentage replaces the percentage at index i, clamped to
// be non-negative. Standard recipes are returned unchanged. An index
// outside the ingredient sequence is a precondition violation and
// returns ErrIndexOutOfRange.
func SetIngredientPercentage(r Recipe, i int, percentage float64) (Recipe, error) {
	if !r.IsEditable() {
		return r, nil
	}
	if i < 0 || i >= len(r.Ingredients) {
		return r, ErrIndexOutOfRange
	}
	if percentage < 0 {
		percentage = 0
	}
	out := r.Clone()
	out.Ingredients[i].Percentage = percentage
	return out, nil
}

// AddIngredient appends a zero-percentage line for the given catalog
// name. Standard recipes are returned unchanged.
func AddIngredient(r Recipe, name string) (Recipe, error) {
	if !r.IsEditable() {
		return r, nil
	}
	ing, err := NewIngredient(name, 0)
	if err != nil {
		return r, err
	}
	out := r.Clone()
	out.Ingredients = append(out.Ingredients, ing)
	return out, nil
}

// RemoveIngredient removes the line at index i. Standard recipes are
// returned unchanged; a bad index returns ErrIndexOutOfRange.
func RemoveIngredient(r Recipe, i int) (Recipe, error) {
	if !r.IsEditable() {
		return r, nil
	}
	if i < 0 || i >= len(r.Ingredients) {
		return r, ErrIndexOutOfRange
	}
	out := r.Clone()
	out.Ingredients = append(out.Ingredients[:i], out.Ingredients[i+1:]...)
	return out, nil
}
