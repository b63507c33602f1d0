package models

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator"
)

const (
	DefaultMood   = "confident"
	SeasonAllYear = "all-season"
)

// Hex like #1a2b3c / #abc, or a plain color word ("red", "dusty rose").
var colorTokenRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$|^[a-zA-Z][a-zA-Z ]{0,29}$`)

func ValidateColorToken(fl validator.FieldLevel) bool {
	return colorTokenRegex.MatchString(fl.Field().String())
}

func ValidateColorTokenRaw(value string) bool {
	return colorTokenRegex.MatchString(value)
}

// PreferenceSet is the validated, immutable form of a design request.
// NewPreferenceSet is the only way to obtain one.
type PreferenceSet struct {
	Gender    string
	Occasion  string
	Style     string
	Colors    []string
	Patterns  []string
	Materials []string
	Mood      string
	Season    string
}

var preferenceValidator = newPreferenceValidator()

func newPreferenceValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("colortoken", ValidateColorToken)
	return v
}

// NewPreferenceSet validates the raw request and builds the canonical set:
// defaults applied, colors lowercased (order kept, it is meaningful),
// patterns/materials deduplicated and sorted so that equal requests always
// produce the same set. Returns *ValidationError on bad input.
func NewPreferenceSet(in DesignRequestIn) (*PreferenceSet, error) {
	if err := preferenceValidator.Struct(in); err != nil {
		return nil, newValidationError(err)
	}

	prefs := &PreferenceSet{
		Gender:    in.Gender,
		Occasion:  in.Occasion,
		Style:     in.Style,
		Colors:    lowerAll(in.Colors),
		Patterns:  canonicalSet(in.Patterns),
		Materials: canonicalSet(in.Materials),
		Mood:      in.Mood,
		Season:    in.Season,
	}
	if prefs.Mood == "" {
		prefs.Mood = DefaultMood
	}
	if prefs.Season == "" {
		prefs.Season = SeasonAllYear
	}
	return prefs, nil
}

func lowerAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.ToLower(strings.TrimSpace(v)))
	}
	return result
}

func canonicalSet(values []string) []string {
	result := lowerAll(values)
	slices.Sort(result)
	return slices.Compact(result)
}

// Fingerprint keys the result cache. Prompt building is deterministic over
// the canonical set, so equal fingerprints mean equal prompts.
func (p *PreferenceSet) Fingerprint() string {
	parts := []string{
		p.Gender, p.Occasion, p.Style,
		strings.Join(p.Colors, ","),
		strings.Join(p.Patterns, ","),
		strings.Join(p.Materials, ","),
		p.Mood, p.Season,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func newValidationError(err error) *ValidationError {
	ve := &ValidationError{Message: "Invalid design preferences", Fields: map[string]string{}}
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			ve.Fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
	} else {
		ve.Message = err.Error()
	}
	return ve
}
