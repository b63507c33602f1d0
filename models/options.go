package models

// Single source of truth for every picker the web client renders.
// The validator tags on DesignRequestIn must stay in sync with these lists.

var Genders = []string{"women", "men", "unisex"}

var Occasions = []string{"casual", "formal", "business", "party", "wedding", "sport", "beach"}

var Styles = []string{"minimalist", "bohemian", "streetwear", "vintage", "classic", "romantic", "sporty", "avant-garde"}

var Patterns = []string{"floral", "striped", "polka-dot", "geometric", "plaid", "animal-print", "paisley", "checkered"}

var Materials = []string{"cotton", "silk", "denim", "leather", "linen", "wool", "velvet", "satin", "chiffon", "knit"}

var Moods = []string{"confident", "playful", "elegant", "edgy", "relaxed", "bold", "romantic", "minimal"}

var Seasons = []string{"spring", "summer", "autumn", "winter", "all-season"}

// Suggested palette for the color picker. Free-form hex tokens are accepted
// too, these are just the swatches the client shows by default.
var ColorSwatches = []string{
	"#000000", "#ffffff", "#ff0000", "#0000ff", "#008000",
	"#ffff00", "#ffa500", "#800080", "#ffc0cb", "#a52a2a",
	"#808080", "#000080", "#f5f5dc", "#ffd700", "#40e0d0",
}

type DesignOptions struct {
	Genders       []string `json:"genders"`
	Occasions     []string `json:"occasions"`
	Styles        []string `json:"styles"`
	ColorSwatches []string `json:"color_swatches"`
	Patterns      []string `json:"patterns"`
	Materials     []string `json:"materials"`
	Moods         []string `json:"moods"`
	Seasons       []string `json:"seasons"`
}

func DesignOptionsCatalog() DesignOptions {
	return DesignOptions{
		Genders:       Genders,
		Occasions:     Occasions,
		Styles:        Styles,
		ColorSwatches: ColorSwatches,
		Patterns:      Patterns,
		Materials:     Materials,
		Moods:         Moods,
		Seasons:       Seasons,
	}
}
