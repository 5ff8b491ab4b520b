package entity

// InferenceRequest is the canonical internal form of one prediction request,
// assembled by the delivery layer before the pipeline runs.
type InferenceRequest struct {
	ClientKey string // throttling bucket, usually the remote address
	Filename  string // client-declared name, used for the extension check only
	MIMEType  string // client-declared content type, may be empty
	Data      []byte
}

// RawPrediction is a single (label, probability) pair as emitted by the
// external classifier. Probabilities are in [0, 1] over the model vocabulary.
type RawPrediction struct {
	Label       string
	Probability float64
}

// AnnotatedPrediction is one ranked result enriched with clinical context.
type AnnotatedPrediction struct {
	Label          string   `json:"label"`
	Confidence     float64  `json:"confidence"` // percent, rounded to two decimals
	Risk           RiskTier `json:"risk"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// PredictionSet is the aggregation output: top-K annotated predictions in
// descending confidence order, plus the urgent-attention flag derived from
// the top-1 label. Treated as immutable once built.
type PredictionSet struct {
	Predictions       []AnnotatedPrediction `json:"predictions"`
	RequiresAttention bool                  `json:"requires_attention"`
}
