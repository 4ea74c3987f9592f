package design

// Catalog enumerates the form options the frontend renders and the API accepts.
type Catalog struct {
	RoomTypes      []string `json:"room_types"`
	Styles         []string `json:"styles"`
	BudgetRanges   []string `json:"budget_ranges"`
	SizeCategories []string `json:"size_categories"`
	ColorOptions   []string `json:"color_options"`
	FeatureOptions []string `json:"feature_options"`
}

// RoomTypes lists the supported room types.
var RoomTypes = []string{
	"Living Room",
	"Bedroom",
	"Kitchen",
	"Bathroom",
	"Home Office",
	"Dining Room",
	"Children's Room",
	"Master Bedroom",
	"Guest Room",
	"Study Room",
}

// Styles lists the supported interior design styles.
var Styles = []string{
	"Modern",
	"Contemporary",
	"Traditional",
	"Minimalist",
	"Scandinavian",
	"Industrial",
	"Bohemian",
	"Rustic",
	"Mid-Century Modern",
	"Art Deco",
	"Mediterranean",
	"Farmhouse",
}

// BudgetRanges lists the ordered budget bands.
var BudgetRanges = []string{
	"Under $1,000",
	"$1,000 - $5,000",
	"$5,000 - $15,000",
	"$15,000 - $30,000",
	"$30,000+",
}

// SizeCategories lists the ordered space sizes.
var SizeCategories = []string{
	"Small (< 100 sq ft)",
	"Medium (100-200 sq ft)",
	"Large (200-400 sq ft)",
	"Very Large (400+ sq ft)",
}

// ColorOptions lists the selectable color preferences.
var ColorOptions = []string{
	"White", "Black", "Gray", "Beige", "Brown",
	"Blue", "Green", "Red", "Yellow", "Purple",
	"Pink", "Orange", "Cream", "Navy", "Teal",
	"Burgundy", "Gold", "Silver", "Coral", "Sage",
}

// FeatureOptions lists the selectable special features.
var FeatureOptions = []string{
	"Built-in Storage",
	"Reading Nook",
	"Work Area",
	"Entertainment Center",
	"Walk-in Closet",
	"En-suite Bathroom",
	"Balcony Access",
	"Fireplace",
	"Bay Window",
	"High Ceilings",
	"Natural Light Focus",
	"Smart Home Integration",
	"Custom Lighting",
	"Statement Wall",
	"Multi-functional Furniture",
}

// DefaultCatalog returns the full set of form options.
func DefaultCatalog() Catalog {
	return Catalog{
		RoomTypes:      RoomTypes,
		Styles:         Styles,
		BudgetRanges:   BudgetRanges,
		SizeCategories: SizeCategories,
		ColorOptions:   ColorOptions,
		FeatureOptions: FeatureOptions,
	}
}
