package entity

import "strings"

// RiskTier grades how dangerous a diagnostic category is.
type RiskTier string

const (
	RiskBenign       RiskTier = "Benign"
	RiskPrecancerous RiskTier = "Pre-cancerous"
	RiskMalignant    RiskTier = "Malignant"
	RiskUnknown      RiskTier = "Unknown"
)

// LabelEntry carries the clinical context for one canonical diagnostic label.
type LabelEntry struct {
	Key            string
	Risk           RiskTier
	Description    string
	Recommendation string
}

// Taxonomy is the fixed table mapping classifier label text to clinical
// context. Matching is case-insensitive substring containment in either
// direction, so an ambiguous label can match several rows; the first row in
// table order wins. That is why this stays an ordered list and not a map.
type Taxonomy struct {
	entries []LabelEntry
}

// DefaultTaxonomy returns the HAM10000 lesion table. Built once at startup
// and treated as immutable afterwards.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{entries: []LabelEntry{
		{
			Key:            "actinic keratosis",
			Risk:           RiskPrecancerous,
			Description:    "Rough, scaly patch caused by sun damage. Can progress to squamous cell carcinoma.",
			Recommendation: "Consult a dermatologist for evaluation and possible treatment.",
		},
		{
			Key:            "basal cell carcinoma",
			Risk:           RiskMalignant,
			Description:    "Most common skin cancer. Slow-growing, rarely metastasizes, but requires treatment.",
			Recommendation: "Seek immediate dermatological evaluation for biopsy and treatment options.",
		},
		{
			Key:            "dermatofibroma",
			Risk:           RiskBenign,
			Description:    "Harmless, firm nodule. No treatment necessary unless symptomatic.",
			Recommendation: "Monitor for changes. No urgent action needed.",
		},
		{
			Key:            "melanoma",
			Risk:           RiskMalignant,
			Description:    "Most dangerous skin cancer. Early detection is critical for survival.",
			Recommendation: "Urgent: Consult a dermatologist or oncologist immediately.",
		},
		{
			Key:            "nevus",
			Risk:           RiskBenign,
			Description:    "Common mole. Usually harmless but should be monitored for changes.",
			Recommendation: "Use the ABCDE rule to monitor. Consult a doctor if changes occur.",
		},
		{
			Key:            "pigmented benign keratosis",
			Risk:           RiskBenign,
			Description:    "Non-cancerous growth (e.g., seborrheic keratosis). Cosmetic concern only.",
			Recommendation: "No medical treatment needed. Can be removed for cosmetic reasons.",
		},
		{
			Key:            "squamous cell carcinoma",
			Risk:           RiskMalignant,
			Description:    "Second most common skin cancer. Can metastasize if untreated.",
			Recommendation: "Seek prompt dermatological evaluation for biopsy and treatment.",
		},
		{
			Key:            "vascular lesion",
			Risk:           RiskBenign,
			Description:    "Blood vessel abnormality (e.g., hemangioma). Usually harmless.",
			Recommendation: "Monitor for changes. Treatment usually not required.",
		},
	}}
}

// Lookup fuzzy-matches a classifier label against the table. A row matches
// when its key contains the lower-cased label or the label contains the key.
func (t *Taxonomy) Lookup(label string) (LabelEntry, bool) {
	lower := strings.ToLower(label)
	for _, e := range t.entries {
		if strings.Contains(lower, e.Key) || strings.Contains(e.Key, lower) {
			return e, true
		}
	}
	return LabelEntry{}, false
}

// Keys returns the canonical label vocabulary in table order.
func (t *Taxonomy) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}
