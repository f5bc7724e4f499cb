package responder

import "context"

// RuleGenerator is the deterministic strategy: canned per-category templates
// with a fixed message when the knowledge base has no relevant hits. It has
// no external dependencies and never fails.
type RuleGenerator struct{}

// NewRuleGenerator constructs the rule-based strategy.
func NewRuleGenerator() RuleGenerator {
	return RuleGenerator{}
}

// Generate picks the canned response for the detected category.
func (RuleGenerator) Generate(_ context.Context, input GenerationInput) (string, error) {
	if !input.HasResults {
		return noResultsResponse, nil
	}
	return categoryResponse(input.Category), nil
}
