package chat

import (
	"fmt"
	"math/rand"
)

// Reply templates for the local generator. A %s placeholder, where
// present, receives the retailer name.

var greetingReplies = []string{
	"Hello, you've reached %s support. What can I do for you today?",
	"Hi! Thanks for getting in touch with %s. How can I help?",
	"Welcome to %s customer care. Tell me what's going on and I'll do my best to sort it out.",
}

var farewellReplies = []string{
	"Thanks for reaching out to %s. Take care, and come back any time you need a hand.",
	"Glad I could help. Have a great rest of your day, and thanks for shopping with %s!",
}

var complaintReplies = []string{
	"That's really not the experience we want you to have, and I apologize. Walk me through what happened and I'll see what I can do to fix it.",
	"I'm sorry this has been so frustrating. Let's go through it together and get you a proper resolution.",
	"You have every right to be annoyed about that. Give me the details and I'll escalate it if I can't resolve it myself.",
}

var refundReplies = []string{
	"I can start a refund for you. Do you have the order number handy so I can pull up the purchase?",
	"Happy to look into a refund. Which order is this about, and how was it paid for?",
}

var technicalReplies = []string{
	"Sorry to hear the item isn't working right. What exactly is it doing, and when did it start?",
	"Let's troubleshoot that. Can you describe the fault and anything you've already tried?",
}

var shippingReplies = []string{
	"I can check on that delivery. Share the order or tracking number and I'll see where the package is.",
	"Let me look up the shipment for you. What's the tracking number?",
}

var warrantyReplies = []string{
	"I can help with a warranty claim. Which product is it, and what's gone wrong with it?",
	"Warranty service is definitely an option here. Tell me about the fault and when you bought the item.",
}

var orderReplies = []string{
	"Sure, I can pull up that order. What's the order number?",
	"I can check the billing on that purchase. Which order should I look at?",
}

var pricingReplies = []string{
	"I can go over pricing with you. Which product are you asking about?",
	"Happy to check prices and any current promotions. What are you looking at?",
}

var cancellationReplies = []string{
	"I can process a cancellation. What would you like to cancel, and what name is the account under?",
	"No problem, cancellations are quick. Which order or service is it?",
}

var urgentReplies = []string{
	"Understood, I'll treat this as a priority. Give me the details and I'll move on it right away.",
	"I hear you, let's not waste time. What do you need handled first?",
}

var questionReplies = []string{
	"Good question. Can you give me a little more context so I answer the right thing?",
	"I can answer that. What specifically would you like to know more about?",
}

var negativeReplies = []string{
	"I'm sorry about the trouble. Tell me a bit more and I'll work on putting it right.",
	"That shouldn't have happened. Let me see what I can do for you.",
}

var positiveReplies = []string{
	"That's great to hear! Anything else I can do for you while you're here?",
	"Wonderful! Let me know if there's anything else you need.",
}

var neutralReplies = []string{
	"Okay, I can help with that. Could you give me a few more details?",
	"Let me make sure I've understood. Can you tell me a bit more about what you're after?",
	"Thanks for the message. What outcome are you hoping for here?",
}

// LocalReply picks a templated reply for the classified utterance. It
// is the offline default and the fallback when remote generation is
// unavailable.
func LocalReply(rng *rand.Rand, retailer string, intent Intent, sentiment Sentiment) string {
	pick := func(replies []string) string {
		return replies[rng.Intn(len(replies))]
	}

	switch intent {
	case IntentGreeting:
		return fmt.Sprintf(pick(greetingReplies), retailer)
	case IntentFarewell:
		return fmt.Sprintf(pick(farewellReplies), retailer)
	case IntentComplaint:
		return pick(complaintReplies)
	case IntentRefund:
		return pick(refundReplies)
	case IntentTechnical:
		return pick(technicalReplies)
	case IntentShipping:
		return pick(shippingReplies)
	case IntentWarranty:
		return pick(warrantyReplies)
	case IntentOrder:
		return pick(orderReplies)
	case IntentPricing:
		return pick(pricingReplies)
	case IntentCancellation:
		return pick(cancellationReplies)
	case IntentUrgent:
		return pick(urgentReplies)
	case IntentQuestion:
		return pick(questionReplies)
	}

	switch sentiment {
	case SentimentNegative:
		return pick(negativeReplies)
	case SentimentPositive:
		return pick(positiveReplies)
	}
	return pick(neutralReplies)
}
