package gate

import "strings"

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

type Sentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

var positiveWords = map[string]struct{}{
	"great": {}, "good": {}, "well": {}, "nice": {}, "love": {}, "proud": {},
	"progress": {}, "win": {}, "strong": {}, "awesome": {}, "excellent": {},
	"improve": {}, "improving": {}, "better": {}, "consistent": {}, "keep": {},
	"celebrate": {}, "amazing": {}, "solid": {}, "happy": {}, "energized": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "worse": {}, "worst": {}, "fail": {}, "failed": {}, "failure": {},
	"never": {}, "quit": {}, "hopeless": {}, "terrible": {}, "awful": {},
	"useless": {}, "pointless": {}, "hate": {}, "disappointing": {}, "wrong": {},
	"weak": {}, "lazy": {}, "shame": {}, "guilty": {}, "stuck": {},
}

// classifySentiment is a bag-of-words heuristic. Confidence is the share of
// the winning polarity among all polarized words; with none, the text is
// neutral with zero confidence.
func classifySentiment(text string) Sentiment {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return Sentiment{Label: SentimentNeutral}
	}

	switch {
	case pos > neg:
		return Sentiment{Label: SentimentPositive, Confidence: float64(pos) / float64(total)}
	case neg > pos:
		return Sentiment{Label: SentimentNegative, Confidence: float64(neg) / float64(total)}
	default:
		return Sentiment{Label: SentimentNeutral, Confidence: 0.5}
	}
}
