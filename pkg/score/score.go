package score

import (
	"math"
	"strings"
)

// ModelVersion is the current scoring model version.
const ModelVersion = "1.0.0"

const (
	// Model parameters from Tavtigian et al. 2020 (PMID 32720330):
	// prior probability of pathogenicity, odds of pathogenicity for a
	// single very strong criterion, and the exponential progression
	// between adjacent tiers.
	priorProbability       = 0.1
	oddsPathVeryStrong     = 350.0
	exponentialProgression = 2.0
)

// oddsPathSupporting is the per-point odds of pathogenicity: one
// supporting criterion is three doublings below very strong,
// 350^(2^-3) ≈ 2.08.
var oddsPathSupporting = math.Pow(oddsPathVeryStrong, math.Pow(exponentialProgression, -3))

// Classification is the qualitative tier derived from the total score.
type Classification string

const (
	ClassPathogenic       Classification = "Pathogenic"
	ClassLikelyPathogenic Classification = "Likely Pathogenic"
	ClassUncertain        Classification = "Uncertain Significance"
	ClassLikelyBenign     Classification = "Likely Benign"
	ClassBenign           Classification = "Benign"
)

// Classifications lists the tiers strongest-pathogenic first.
func Classifications() []Classification {
	return []Classification{
		ClassPathogenic,
		ClassLikelyPathogenic,
		ClassUncertain,
		ClassLikelyBenign,
		ClassBenign,
	}
}

// Valid reports whether c is one of the defined tiers.
func (c Classification) Valid() bool {
	switch c {
	case ClassPathogenic, ClassLikelyPathogenic, ClassUncertain,
		ClassLikelyBenign, ClassBenign:
		return true
	}
	return false
}

// Classify maps a total score to its tier using the fixed breakpoints of
// the point-based recalibration.
func Classify(points int) Classification {
	switch {
	case points >= 10:
		return ClassPathogenic
	case points >= 6:
		return ClassLikelyPathogenic
	case points >= 0:
		return ClassUncertain
	case points >= -6:
		return ClassLikelyBenign
	default:
		return ClassBenign
	}
}

// Posterior returns the posterior probability of pathogenicity for a total
// score: OP^points * prior / ((OP^points - 1) * prior + 1).
func Posterior(points int) float64 {
	odds := math.Pow(oddsPathSupporting, float64(points))
	return (odds * priorProbability) / ((odds-1)*priorProbability + 1)
}

// EvidenceItem is one resolved code with its contribution to the score.
type EvidenceItem struct {
	Code        string `json:"code" yaml:"code"`
	Points      int    `json:"points" yaml:"points"`
	Description string `json:"description" yaml:"description"`
}

// Result is the aggregate outcome of scoring a set of evidence codes.
type Result struct {
	Evidence       []EvidenceItem `json:"evidence" yaml:"evidence"`
	Score          int            `json:"score" yaml:"score"`
	Classification Classification `json:"classification" yaml:"classification"`
	Probability    float64        `json:"probability" yaml:"probability"`
}

// EvidenceString returns the normalized comma-separated evidence labels.
func (r *Result) EvidenceString() string {
	labels := make([]string, 0, len(r.Evidence))
	for _, e := range r.Evidence {
		labels = append(labels, e.Code)
	}
	return strings.Join(labels, ", ")
}

// Compute sums the evidence points and derives the tier and posterior
// probability. The evidence order is preserved in the result.
func Compute(evidence []Evidence) *Result {
	r := &Result{
		Evidence: make([]EvidenceItem, 0, len(evidence)),
	}
	for _, ev := range evidence {
		r.Evidence = append(r.Evidence, EvidenceItem{
			Code:        ev.Label(),
			Points:      ev.Points(),
			Description: ev.Code.Description,
		})
		r.Score += ev.Points()
	}
	r.Classification = Classify(r.Score)
	r.Probability = Posterior(r.Score)
	return r
}

// Evaluate parses a raw evidence string and scores it.
func Evaluate(input string) (*Result, error) {
	list, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Compute(list), nil
}
