package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// exchange is one completed user/agent turn.
type exchange struct {
	user  string
	agent string
}

// Simulator holds one simulated support conversation with a retailer.
// It is not safe for concurrent use; run one conversation per
// Simulator.
type Simulator struct {
	cfg    *Config
	client llms.Model
	logger *slog.Logger
	rng    *rand.Rand

	history []exchange

	// Optional transcript recording.
	comms    storage.CommunicationRepository
	refundID core.ID
	claimID  core.ID
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClient supplies the chat model directly, bypassing the
// Host-based client construction. Tests use this to stub the remote.
func WithClient(client llms.Model) Option {
	return func(s *Simulator) {
		s.client = client
	}
}

// WithTranscript records every exchange into the communications
// collection against the given refund or warranty claim. Exactly one
// id should be set, matching the communication validation rules.
func WithTranscript(comms storage.CommunicationRepository, refundID, claimID core.ID) Option {
	return func(s *Simulator) {
		s.comms = comms
		s.refundID = refundID
		s.claimID = claimID
	}
}

// NewSimulator creates a conversation simulator. With no host
// configured and no injected client, replies come from the local
// templated generator only.
func NewSimulator(cfg *Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:    cfg,
		logger: slog.Default().With("component", "chat"),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil && cfg.Host != "" {
		client, err := openai.New(
			openai.WithBaseURL(cfg.Host),
			openai.WithToken("none"),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, err
		}
		s.client = client
	}

	return s, nil
}

// Open returns the agent's opening line for a conversation.
func (s *Simulator) Open(retailer string) string {
	return LocalReply(s.rng, retailer, IntentGreeting, SentimentNeutral)
}

// Reply produces the agent's answer to one customer utterance. Remote
// generation is tried first when a client is configured; any remote
// failure falls back to the local generator, so the only errors that
// reach the caller are an empty utterance and context cancellation.
func (s *Simulator) Reply(ctx context.Context, retailer, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyUtterance
	}

	intent := DetectIntent(message)
	sentiment := AnalyzeSentiment(message)

	var reply string
	if s.client != nil {
		err := RetryWithBackoff(ctx, func() error {
			remote, genErr := s.generateRemote(ctx, retailer, message)
			if genErr != nil {
				return genErr
			}
			reply = remote
			return nil
		}, s.cfg.MaxAttempts, s.cfg.BaseDelay)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			s.logger.Warn("remote generation failed, using local reply",
				"retailer", retailer, "intent", intent, "err", err)
			reply = ""
		}
	}
	if reply == "" {
		reply = LocalReply(s.rng, retailer, intent, sentiment)
	}

	s.remember(message, reply)
	s.record(ctx, message, reply)

	return reply, nil
}

func (s *Simulator) generateRemote(ctx context.Context, retailer, message string) (string, error) {
	system := fmt.Sprintf(
		"You are a customer support agent for %s. The customer is rehearsing a real support conversation about an order, refund, or warranty claim. Answer briefly, politely, and concretely, the way a capable human agent would.",
		retailer)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
	}
	for _, ex := range s.history {
		content = append(content,
			llms.MessageContent{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextPart(ex.user)},
			},
			llms.MessageContent{
				Role:  llms.ChatMessageTypeAI,
				Parts: []llms.ContentPart{llms.TextPart(ex.agent)},
			})
	}
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(message)},
	})

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errors.New("no choices returned from model")
	}
	reply := strings.TrimSpace(response.Choices[0].Content)
	if reply == "" {
		return "", errors.New("model returned an empty reply")
	}
	return reply, nil
}

// remember appends the exchange, keeping only the most recent
// HistoryLimit turns as remote context.
func (s *Simulator) remember(user, agent string) {
	s.history = append(s.history, exchange{user: user, agent: agent})
	if over := len(s.history) - s.cfg.HistoryLimit; over > 0 {
		s.history = s.history[over:]
	}
}

// record writes the exchange into the communications collection when
// transcript recording is on. A failed write is logged, not surfaced.
func (s *Simulator) record(ctx context.Context, user, agent string) {
	if s.comms == nil {
		return
	}
	for _, line := range []string{"You: " + user, "Agent: " + agent} {
		_, err := s.comms.Add(ctx, &core.Communication{
			RefundId:        s.refundID,
			WarrantyClaimId: s.claimID,
			Message:         line,
		})
		if err != nil {
			s.logger.Warn("failed to record chat transcript", "err", err)
			return
		}
	}
}
