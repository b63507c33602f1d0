package models

type DesignRequestIn struct {
	Gender    string   `json:"gender" validate:"required,oneof=women men unisex"`
	Occasion  string   `json:"occasion" validate:"required,oneof=casual formal business party wedding sport beach"`
	Style     string   `json:"style" validate:"required,oneof=minimalist bohemian streetwear vintage classic romantic sporty avant-garde"`
	Colors    []string `json:"colors" validate:"required,min=1,max=5,dive,colortoken"`
	Patterns  []string `json:"patterns" validate:"omitempty,max=4,dive,oneof=floral striped polka-dot geometric plaid animal-print paisley checkered"`
	Materials []string `json:"materials" validate:"omitempty,max=4,dive,oneof=cotton silk denim leather linen wool velvet satin chiffon knit"`
	Mood      string   `json:"mood" validate:"omitempty,oneof=confident playful elegant edgy relaxed bold romantic minimal"`
	Season    string   `json:"season" validate:"omitempty,oneof=spring summer autumn winter all-season"`
}

type FeedbackIn struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
	Email   *string `json:"email" validate:"omitempty,email"`
}
