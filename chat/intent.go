package chat

import "regexp"

// Intent is the classified purpose of a customer utterance.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentFarewell     Intent = "farewell"
	IntentComplaint    Intent = "complaint"
	IntentRefund       Intent = "refund"
	IntentTechnical    Intent = "technical"
	IntentShipping     Intent = "shipping"
	IntentWarranty     Intent = "warranty"
	IntentOrder        Intent = "order"
	IntentPricing      Intent = "pricing"
	IntentCancellation Intent = "cancellation"
	IntentUrgent       Intent = "urgent"
	IntentQuestion     Intent = "question"
	IntentGeneral      Intent = "general"
)

var (
	greetingRe     = regexp.MustCompile(`(?i)^(hi|hello|hey|good morning|good afternoon|good evening)`)
	farewellRe     = regexp.MustCompile(`(?i)(bye|goodbye|see you|thanks|thank you|have a good)`)
	complaintRe    = regexp.MustCompile(`(?i)(angry|frustrated|upset|disappointed|terrible|awful|horrible|worst)`)
	urgentRe       = regexp.MustCompile(`(?i)(urgent|asap|immediately|right now|emergency)`)
	questionRe     = regexp.MustCompile(`(?i)(\?|how|what|when|where|why|can you|could you|would you)`)
	refundRe       = regexp.MustCompile(`(?i)(refund|return|money back|credit|reimburse)`)
	technicalRe    = regexp.MustCompile(`(?i)(broken|not working|defective|damaged|error|issue|problem|bug)`)
	shippingRe     = regexp.MustCompile(`(?i)(shipping|delivery|tracking|shipped|arrived|package)`)
	warrantyRe     = regexp.MustCompile(`(?i)(warranty|repair|service|fix|replacement)`)
	orderRe        = regexp.MustCompile(`(?i)(order|purchase|bought|billing|charge|payment)`)
	pricingRe      = regexp.MustCompile(`(?i)(price|cost|expensive|cheap|discount|sale)`)
	cancellationRe = regexp.MustCompile(`(?i)(cancel|stop|unsubscribe|remove)`)
)

// DetectIntent classifies an utterance. The checks run in priority
// order: conversational markers first, then topic keywords, then the
// catch-alls, so "hi, I want a refund" reads as a greeting and the
// refund surfaces on the next turn.
func DetectIntent(message string) Intent {
	switch {
	case greetingRe.MatchString(message):
		return IntentGreeting
	case farewellRe.MatchString(message):
		return IntentFarewell
	case complaintRe.MatchString(message):
		return IntentComplaint
	case refundRe.MatchString(message):
		return IntentRefund
	case technicalRe.MatchString(message):
		return IntentTechnical
	case shippingRe.MatchString(message):
		return IntentShipping
	case warrantyRe.MatchString(message):
		return IntentWarranty
	case orderRe.MatchString(message):
		return IntentOrder
	case pricingRe.MatchString(message):
		return IntentPricing
	case cancellationRe.MatchString(message):
		return IntentCancellation
	case urgentRe.MatchString(message):
		return IntentUrgent
	case questionRe.MatchString(message):
		return IntentQuestion
	}
	return IntentGeneral
}
