package model

import "github.com/secmon-lab/tierscope/pkg/domain/types"

// Result is what a completed assessment hands to the view in one piece
type Result struct {
	Tier    types.Tier     `json:"tier"`
	Badge   types.Badge    `json:"badge"`
	Score   ScoreBreakdown `json:"score"`
	Content TierContent    `json:"content"`
}

// Evaluate scores answers and resolves the matching content in catalog
func Evaluate(answers AnswerSet, catalog *ContentCatalog) (*Result, error) {
	score := Score(answers)
	content, err := catalog.Lookup(score.Tier)
	if err != nil {
		return nil, err
	}

	return &Result{
		Tier:    score.Tier,
		Badge:   score.Tier.Badge(),
		Score:   score,
		Content: content,
	}, nil
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Content = r.Content.clone()
	return &c
}
