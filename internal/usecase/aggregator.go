package usecase

import (
	"math"
	"sort"
	"strings"

	"dermascan-core/internal/domain/entity"
)

// urgentKeywords mark a top prediction as needing prompt follow-up. The flag
// is a keyword check over the top-1 label only, computed independently of
// the taxonomy risk tier; the two signals can disagree.
var urgentKeywords = []string{"melanoma", "carcinoma", "actinic"}

// Aggregator turns the classifier's raw probability distribution into the
// ranked, clinically annotated result set served to callers.
type Aggregator struct {
	taxonomy *entity.Taxonomy
}

func NewAggregator(taxonomy *entity.Taxonomy) *Aggregator {
	return &Aggregator{taxonomy: taxonomy}
}

// Aggregate keeps the top-K entries by probability and annotates each with
// clinical context, falling back to the Unknown tier when no taxonomy row
// matches. The sort is stable, so equal probabilities keep the classifier's
// own ordering. The input slice is not modified.
func (a *Aggregator) Aggregate(raw []entity.RawPrediction, topK int) *entity.PredictionSet {
	ranked := make([]entity.RawPrediction, len(raw))
	copy(ranked, raw)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}
	ranked = ranked[:topK]

	predictions := make([]entity.AnnotatedPrediction, 0, len(ranked))
	for _, p := range ranked {
		annotated := entity.AnnotatedPrediction{
			Label:      p.Label,
			Confidence: toConfidence(p.Probability),
			Risk:       entity.RiskUnknown,
		}
		if info, ok := a.taxonomy.Lookup(p.Label); ok {
			annotated.Risk = info.Risk
			annotated.Description = info.Description
			annotated.Recommendation = info.Recommendation
		}
		predictions = append(predictions, annotated)
	}

	return &entity.PredictionSet{
		Predictions:       predictions,
		RequiresAttention: requiresAttention(predictions),
	}
}

// toConfidence converts a probability to a percentage with two decimals.
func toConfidence(p float64) float64 {
	return math.Round(p*10000) / 100
}

func requiresAttention(predictions []entity.AnnotatedPrediction) bool {
	if len(predictions) == 0 {
		return false
	}
	top := strings.ToLower(predictions[0].Label)
	for _, kw := range urgentKeywords {
		if strings.Contains(top, kw) {
			return true
		}
	}
	return false
}
