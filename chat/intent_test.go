package chat

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"Hi there", IntentGreeting},
		{"hello, I need some help", IntentGreeting},
		{"thanks, goodbye", IntentFarewell},
		{"this is the worst experience I've ever had", IntentComplaint},
		{"I want my money back", IntentRefund},
		{"the screen is broken", IntentTechnical},
		{"where is my package", IntentShipping},
		{"is this covered by warranty", IntentWarranty},
		{"I was charged twice for my purchase", IntentOrder},
		{"why is this so expensive", IntentPricing},
		{"please cancel my subscription", IntentCancellation},
		{"I need this resolved ASAP", IntentUrgent},
		{"what are your opening hours?", IntentQuestion},
		{"just leaving a note", IntentGeneral},
	}

	for _, tt := range tests {
		if got := DetectIntent(tt.message); got != tt.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestDetectIntentPriority(t *testing.T) {
	// Conversational markers win over topic keywords.
	if got := DetectIntent("hi, I'd like a refund"); got != IntentGreeting {
		t.Errorf("Expected greeting to take priority, got %q", got)
	}
	// Topic keywords win over the question catch-all.
	if got := DetectIntent("how do I get a refund?"); got != IntentRefund {
		t.Errorf("Expected refund to take priority over question, got %q", got)
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		message string
		want    Sentiment
	}{
		{"this is great, I love it", SentimentPositive},
		{"terrible service, I'm very angry", SentimentNegative},
		{"I ordered a blender last week", SentimentNeutral},
		{"the product is good but the delivery was awful and terrible", SentimentNegative},
	}

	for _, tt := range tests {
		if got := AnalyzeSentiment(tt.message); got != tt.want {
			t.Errorf("AnalyzeSentiment(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
