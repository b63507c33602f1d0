package services

import (
	"fmt"
	"strings"

	"atelierapi/models"
)

// Hex swatches the client palette sends, mapped to words the image models
// understand much better than raw hex.
var colorNames = map[string]string{
	"#000000": "black",
	"#ffffff": "white",
	"#ff0000": "red",
	"#0000ff": "blue",
	"#008000": "green",
	"#ffff00": "yellow",
	"#ffa500": "orange",
	"#800080": "purple",
	"#ffc0cb": "pink",
	"#a52a2a": "brown",
	"#808080": "grey",
	"#000080": "navy blue",
	"#f5f5dc": "beige",
	"#ffd700": "gold",
	"#c0c0c0": "silver",
	"#40e0d0": "turquoise",
	"#800000": "maroon",
	"#e6e6fa": "lavender",
	"#50c878": "emerald green",
	"#dc143c": "crimson",
}

var moodPhrases = map[string]string{
	"confident": "radiating confidence and poise",
	"playful":   "with a playful, lighthearted feel",
	"elegant":   "exuding refined elegance",
	"edgy":      "with a bold, edgy attitude",
	"relaxed":   "with an effortless, relaxed vibe",
	"bold":      "making a bold statement",
	"romantic":  "with a soft, romantic feel",
	"minimal":   "with clean, understated simplicity",
}

const genericMoodPhrase = "with a stylish, polished look"

var seasonPhrases = map[string]string{
	"spring": "perfect for spring, light and fresh",
	"summer": "suited to warm summer days, breathable and airy",
	"autumn": "layered for autumn, in warm seasonal tones",
	"winter": "designed for winter, cozy and warm",
}

// Fixed tail that biases every request towards clean catalog-style output.
const promptSuffix = "Full-body fashion photography, studio lighting, detailed fabric texture, high resolution, professional fashion illustration."

// BuildPrompt renders a validated preference set into the prompt sent to
// the image providers. Pure and deterministic: the same set always yields
// the same string, which is what makes the result cache sound. Unknown
// tokens degrade to generic text, never to an error.
func BuildPrompt(prefs *models.PreferenceSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A %s %s outfit design for %s", prefs.Style, prefs.Occasion, prefs.Gender)

	if len(prefs.Colors) > 0 {
		b.WriteString(", in ")
		b.WriteString(strings.Join(mapColors(prefs.Colors), " and "))
		b.WriteString(" tones")
	}
	if len(prefs.Patterns) > 0 {
		fmt.Fprintf(&b, ", featuring %s patterns", strings.Join(prefs.Patterns, " and "))
	}
	if len(prefs.Materials) > 0 {
		fmt.Fprintf(&b, ", made of %s", strings.Join(prefs.Materials, " and "))
	}

	phrase, ok := moodPhrases[prefs.Mood]
	if !ok {
		phrase = genericMoodPhrase
	}
	b.WriteString(", ")
	b.WriteString(phrase)

	if prefs.Season != models.SeasonAllYear {
		if seasonal, ok := seasonPhrases[prefs.Season]; ok {
			b.WriteString(", ")
			b.WriteString(seasonal)
		}
	}

	b.WriteString(". ")
	b.WriteString(promptSuffix)
	return b.String()
}

// Unmapped tokens pass through verbatim, the models cope with plain words
// and even hex.
func mapColors(tokens []string) []string {
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if name, ok := colorNames[strings.ToLower(token)]; ok {
			names = append(names, name)
			continue
		}
		names = append(names, token)
	}
	return names
}
