package recipe

// Category classifies a catalog ingredient for percentage math and
// prompt construction. Flour entries form the 100% baseline.
type Category string

const (
	CategoryFlour      Category = "flour"
	CategoryLiquid     Category = "liquid"
	CategoryLeavening  Category = "leavening"
	CategoryEnrichment Category = "enrichment"
	CategoryFlavor     Category = "flavor"
	CategoryInclusion  Category = "inclusion"
)

// IngredientWater is the catalog name for water. Water is singled out
// elsewhere for bake-loss handling, so its name gets a constant.
const IngredientWater = "Water"

// IngredientInfo is a static catalog entry. The catalog is a process-wide
// constant table; it is never mutated at runtime.
type IngredientInfo struct {
	Name     string
	Category Category
}

// catalog is the closed set of ingredient identities. Recipe ingredients
// must name one of these entries; anything else is rejected at
// construction time.
var catalog = []IngredientInfo{
	{Name: "White Flour", Category: CategoryFlour},
	{Name: "Whole Wheat Flour", Category: CategoryFlour},
	{Name: "Rye Flour", Category: CategoryFlour},
	{Name: "Spelt Flour", Category: CategoryFlour},
	{Name: "Semolina Flour", Category: CategoryFlour},

	{Name: IngredientWater, Category: CategoryLiquid},
	{Name: "Milk", Category: CategoryLiquid},
	{Name: "Buttermilk", Category: CategoryLiquid},

	{Name: "Sourdough Starter", Category: CategoryLeavening},
	{Name: "Instant Yeast", Category: CategoryLeavening},
	{Name: "Active Dry Yeast", Category: CategoryLeavening},

	{Name: "Butter", Category: CategoryEnrichment},
	{Name: "Olive Oil", Category: CategoryEnrichment},
	{Name: "Sugar", Category: CategoryEnrichment},
	{Name: "Honey", Category: CategoryEnrichment},
	{Name: "Eggs", Category: CategoryEnrichment},

	{Name: "Salt", Category: CategoryFlavor},
	{Name: "Cinnamon", Category: CategoryFlavor},
	{Name: "Caraway Seeds", Category: CategoryFlavor},

	{Name: "Sesame Seeds", Category: CategoryInclusion},
	{Name: "Sunflower Seeds", Category: CategoryInclusion},
	{Name: "Walnuts", Category: CategoryInclusion},
	{Name: "Raisins", Category: CategoryInclusion},
	{Name: "Olives", Category: CategoryInclusion},
}

var catalogByName = func() map[string]IngredientInfo {
	m := make(map[string]IngredientInfo, len(catalog))
	for _, info := range catalog {
		m[info.Name] = info
	}
	return m
}()

// Catalog returns a copy of the ingredient catalog in display order.
func Catalog() []IngredientInfo {
	out := make([]IngredientInfo, len(catalog))
	copy(out, catalog)
	return out
}

// LookupIngredient finds a catalog entry by exact name.
func LookupIngredient(name string) (IngredientInfo, bool) {
	info, ok := catalogByName[name]
	return info, ok
}

// CategoryOf returns the category for a catalog name. It reports false
// for names outside the catalog.
func CategoryOf(name string) (Category, bool) {
	info, ok := catalogByName[name]
	return info.Category, ok
}
