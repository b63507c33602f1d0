package languageutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var TitleCaser = cases.Title(language.English)
var LowerCaser = cases.Lower(language.English)

// Label turns an option token into display text: "polka-dot" -> "Polka Dot",
// "all-season" -> "All Season".
func Label(token string) string {
	return TitleCaser.String(strings.ReplaceAll(token, "-", " "))
}
