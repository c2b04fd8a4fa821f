package recipe

// Built-in recipes shipped with the application. Loaded once at process
// start and never modified; flour percentages in each sum to 100.
var standardRecipes = []Recipe{
	{
		ID:              "std-country-sourdough",
		Name:            "Country Sourdough",
		Description:     "An open-crumb hearth loaf with a small portion of whole wheat for flavor.",
		TotalFlourGrams: 1000,
		IsStandard:      true,
		Ingredients: []Ingredient{
			{Name: "White Flour", Percentage: 90},
			{Name: "Whole Wheat Flour", Percentage: 10},
			{Name: "Water", Percentage: 75},
			{Name: "Sourdough Starter", Percentage: 20},
			{Name: "Salt", Percentage: 2},
		},
	},
	{
		ID:              "std-baguette",
		Name:            "Classic Baguette",
		Description:     "A lean French stick: flour, water, yeast, salt and nothing else.",
		TotalFlourGrams: 500,
		IsStandard:      true,
		Ingredients: []Ingredient{
			{Name: "White Flour", Percentage: 100},
			{Name: "Water", Percentage: 68},
			{Name: "Instant Yeast", Percentage: 1},
			{Name: "Salt", Percentage: 2},
		},
	},
	{
		ID:              "std-whole-wheat-sandwich",
		Name:            "Whole Wheat Sandwich Loaf",
		Description:     "A soft pan loaf enriched with butter and honey, good for slicing.",
		TotalFlourGrams: 600,
		IsStandard:      true,
		Ingredients: []Ingredient{
			{Name: "Whole Wheat Flour", Percentage: 60},
			{Name: "White Flour", Percentage: 40},
			{Name: "Water", Percentage: 62},
			{Name: "Butter", Percentage: 6},
			{Name: "Honey", Percentage: 6},
			{Name: "Instant Yeast", Percentage: 1.5},
			{Name: "Salt", Percentage: 2},
		},
	},
	{
		ID:              "std-seeded-rye",
		Name:            "Seeded Rye",
		Description:     "A dense sourdough rye studded with sunflower and caraway seeds.",
		TotalFlourGrams: 800,
		IsStandard:      true,
		Ingredients: []Ingredient{
			{Name: "Rye Flour", Percentage: 40},
			{Name: "White Flour", Percentage: 60},
			{Name: "Water", Percentage: 78},
			{Name: "Sourdough Starter", Percentage: 25},
			{Name: "Sunflower Seeds", Percentage: 10},
			{Name: "Caraway Seeds", Percentage: 2},
			{Name: "Salt", Percentage: 2},
		},
	},
}

// StandardRecipes returns deep copies of the built-in recipes, in
// display order.
func StandardRecipes() []Recipe {
	out := make([]Recipe, len(standardRecipes))
	for i, r := range standardRecipes {
		out[i] = r.Clone()
	}
	return out
}

// IsStandardID reports whether id names a built-in recipe.
func IsStandardID(id string) bool {
	for _, r := range standardRecipes {
		if r.ID == id {
			return true
		}
	}
	return false
}
