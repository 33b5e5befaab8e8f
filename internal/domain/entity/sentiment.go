package entity

// MaxInputChars is the longest input, in characters, passed to the model.
// It matches the maximum sequence length of distilbert-base-uncased-finetuned-sst-2-english.
const MaxInputChars = 512

// Label represents the normalized three-way sentiment vocabulary
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// Raw labels emitted by the pretrained model
const (
	RawLabelPositive = "POSITIVE"
	RawLabelNegative = "NEGATIVE"
)

// Prediction represents a normalized sentiment prediction
type Prediction struct {
	// Text is the original, untruncated input. Only set for batch predictions.
	Text  string  `json:"text,omitempty"`
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// NormalizeLabel maps a raw model label onto the three-way vocabulary.
// Any label other than POSITIVE or NEGATIVE maps to Neutral.
func NormalizeLabel(raw string) Label {
	switch raw {
	case RawLabelPositive:
		return LabelPositive
	case RawLabelNegative:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// TruncateInput returns the first MaxInputChars characters of text
func TruncateInput(text string) string {
	if len(text) <= MaxInputChars {
		return text
	}
	n := 0
	for i := range text {
		if n == MaxInputChars {
			return text[:i]
		}
		n++
	}
	return text
}

// String implements fmt.Stringer
func (l Label) String() string {
	return string(l)
}
