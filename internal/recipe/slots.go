package recipe

// MaxIngredients is the number of ingredient/measure pairs the wire schema can
// carry.
const MaxIngredients = 20

type slotKeys struct {
	ingredient string
	measure    string
}

// slots maps a zero-based slot index to its wire keys.
var slots = [MaxIngredients]slotKeys{
	{"strIngredient1", "strMeasure1"},
	{"strIngredient2", "strMeasure2"},
	{"strIngredient3", "strMeasure3"},
	{"strIngredient4", "strMeasure4"},
	{"strIngredient5", "strMeasure5"},
	{"strIngredient6", "strMeasure6"},
	{"strIngredient7", "strMeasure7"},
	{"strIngredient8", "strMeasure8"},
	{"strIngredient9", "strMeasure9"},
	{"strIngredient10", "strMeasure10"},
	{"strIngredient11", "strMeasure11"},
	{"strIngredient12", "strMeasure12"},
	{"strIngredient13", "strMeasure13"},
	{"strIngredient14", "strMeasure14"},
	{"strIngredient15", "strMeasure15"},
	{"strIngredient16", "strMeasure16"},
	{"strIngredient17", "strMeasure17"},
	{"strIngredient18", "strMeasure18"},
	{"strIngredient19", "strMeasure19"},
	{"strIngredient20", "strMeasure20"},
}

// Scalar wire keys.
const (
	keyID             = "idMeal"
	keyName           = "strMeal"
	keyDrinkAlternate = "strDrinkAlternate"
	keyCategory       = "strCategory"
	keyArea           = "strArea"
	keyInstructions   = "strInstructions"
	keyTags           = "strTags"
	keyImage          = "strMealThumb"
	keyYoutube        = "strYoutube"
	keySource         = "strSource"
	keyImageSource    = "strImageSource"
)
