package router

import "github.com/go-playground/validator/v10"

// Classification is the classifier's output contract (§4.F), validated
// with struct tags the way riskibarqy-fantasy-league validates inbound
// DTOs before use.
type Classification struct {
	Type      string   `validate:"required,oneof=stats_lookup comparison trend_analysis explainer prediction leaders team_breakdown matchup_prediction tonight_prediction trade_suggestion"`
	Players   []string `validate:"dive,required"`
	Teams     []string `validate:"dive,required"`
	Stats     []string `validate:"dive,required"`
	Timeframe string

	IsLeadersQuery    bool
	IsAllTeamsQuery   bool
	IsPredictionQuery bool
	IsTonightQuery    bool
	IsTradeQuery      bool
	TopN              int
}

var validate = validator.New()

// Validate checks the classification against its struct tags, returning a
// descriptive error on the first violation.
func (c Classification) Validate() error {
	return validate.Struct(c)
}

// NormalizedTeams resolves every free-form team reference in the
// classification to its 3-letter code.
func (c Classification) NormalizedTeams() []string {
	return NormalizeTeams(c.Teams)
}
