package services

import (
	"testing"

	"atelierapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrefs() *models.PreferenceSet {
	prefs, err := models.NewPreferenceSet(models.DesignRequestIn{
		Gender:   "women",
		Occasion: "party",
		Style:    "vintage",
		Colors:   []string{"#ff0000", "#000000"},
	})
	if err != nil {
		panic(err)
	}
	return prefs
}

func TestBuildPromptDeterministic(t *testing.T) {
	prefs := testPrefs()
	first := BuildPrompt(prefs)
	second := BuildPrompt(prefs)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func TestBuildPromptMapsKnownColors(t *testing.T) {
	prompt := BuildPrompt(testPrefs())
	assert.Contains(t, prompt, "red and black tones")
	assert.NotContains(t, prompt, "#ff0000")
}

func TestBuildPromptUnmappedColorPassesVerbatim(t *testing.T) {
	prefs := testPrefs()
	prefs.Colors = []string{"#123456", "periwinkle"}
	prompt := BuildPrompt(prefs)
	assert.Contains(t, prompt, "#123456 and periwinkle tones")
}

func TestBuildPromptBaseClause(t *testing.T) {
	prompt := BuildPrompt(testPrefs())
	assert.Contains(t, prompt, "A vintage party outfit design for women")
}

func TestBuildPromptPatternAndMaterialClauses(t *testing.T) {
	prefs := testPrefs()
	prefs.Patterns = []string{"floral", "striped"}
	prefs.Materials = []string{"silk"}
	prompt := BuildPrompt(prefs)
	assert.Contains(t, prompt, "featuring floral and striped patterns")
	assert.Contains(t, prompt, "made of silk")

	bare := BuildPrompt(testPrefs())
	assert.NotContains(t, bare, "patterns")
	assert.NotContains(t, bare, "made of")
}

func TestBuildPromptMoodPhrases(t *testing.T) {
	prefs := testPrefs()
	prompt := BuildPrompt(prefs)
	assert.Contains(t, prompt, "radiating confidence and poise")

	// unrecognized moods degrade to the generic phrase, never fail
	prefs.Mood = "mysterious"
	prompt = BuildPrompt(prefs)
	assert.Contains(t, prompt, genericMoodPhrase)
}

func TestBuildPromptSeasonClause(t *testing.T) {
	prefs := testPrefs()
	assert.NotContains(t, BuildPrompt(prefs), "winter")

	prefs.Season = "winter"
	assert.Contains(t, BuildPrompt(prefs), "designed for winter")
}

func TestBuildPromptAlwaysCarriesQualitySuffix(t *testing.T) {
	assert.Contains(t, BuildPrompt(testPrefs()), promptSuffix)
}
