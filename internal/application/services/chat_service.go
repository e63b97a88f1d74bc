package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	chatentities "github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/chat"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/ai"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/chat"
)

// ChatReply is the payload returned for one chat turn.
type ChatReply struct {
	SessionID     string   `json:"sessionId"`
	Reply         string   `json:"reply"`
	Suggestions   []string `json:"suggestions"`
	RouteTo       string   `json:"routeTo,omitempty"`
	LeadQualified bool     `json:"leadQualified"`
	Source        string   `json:"source"`
}

// fallbackEntry is one row of the static keyword response table. The first
// entry whose keyword appears as a substring of the user message wins; the
// final entry with no keywords is the wildcard catch-all.
type fallbackEntry struct {
	keywords    []string
	response    string
	suggestions []string
	routeTo     string
}

var fallbackTable = []fallbackEntry{
	{
		keywords:    []string{"price", "cost", "budget", "quote", "rate"},
		response:    "Project pricing depends on scope, so the fastest way to get a real number is a short call with our team. Drop us a line through the contact form and we'll come back with an estimate within two business days.",
		suggestions: []string{"Go to the contact form", "See our services"},
		routeTo:     "contact",
	},
	{
		keywords:    []string{"service", "offer", "what do you do", "capabilit"},
		response:    "We design and build marketing sites, web apps, and brand systems end to end. Have a look at the services page for the full breakdown.",
		suggestions: []string{"Browse services", "See recent work"},
		routeTo:     "services",
	},
	{
		keywords:    []string{"portfolio", "work", "project", "case stud", "example"},
		response:    "Our recent projects are in the work section, each with a short write-up of what we built and why.",
		suggestions: []string{"See recent work", "Meet the team"},
		routeTo:     "articles",
	},
	{
		keywords:    []string{"team", "who", "people", "founder"},
		response:    "We're a small senior team of designers and engineers. The team page has everyone's background.",
		suggestions: []string{"Meet the team"},
		routeTo:     "team",
	},
	{
		keywords:    []string{"contact", "email", "call", "reach", "talk", "hire"},
		response:    "The quickest way to reach us is the contact form; we answer every message within one business day.",
		suggestions: []string{"Go to the contact form"},
		routeTo:     "contact",
	},
	{
		// Wildcard catch-all; must stay last.
		response:    "Thanks for the message! I can point you toward our services, recent work, or the team, or you can reach us directly through the contact form.",
		suggestions: []string{"See our services", "Go to the contact form"},
	},
}

// leadKeywords flag a message as a qualified lead regardless of which
// response path answered it.
var leadKeywords = []string{"price", "budget", "quote", "hire", "project"}

const systemPrompt = "You are the assistant on a digital studio's marketing site. Answer briefly and helpfully about the studio's services, work, team, and process. When a visitor asks about pricing or wants to start a project, point them to the contact form."

// ChatService runs one chat turn: append the user message to the session
// transcript, try the hosted LLM once, fall back to the keyword table on
// any failure, then persist the updated transcript.
type ChatService struct {
	transcriptRepo *persistence.SQLTranscriptRepository
	llm            ai.Client
	logger         *logging.ChanneledLogger
}

// NewChatService creates a new chat service.
func NewChatService(transcriptRepo *persistence.SQLTranscriptRepository, llm ai.Client, logger *logging.ChanneledLogger) *ChatService {
	return &ChatService{
		transcriptRepo: transcriptRepo,
		llm:            llm,
		logger:         logger,
	}
}

// HandleMessage processes one user message for a session. An empty
// sessionID starts a new session. Transcript persistence failures are
// logged but never block the reply.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, message string) *ChatReply {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	transcript, err := s.transcriptRepo.FindBySession(sessionID)
	if err != nil {
		s.logger.Chat().Error("Failed to load transcript, starting fresh", "sessionId", sessionID, "error", err.Error())
	}
	if transcript == nil {
		transcript = &chatentities.Transcript{SessionID: sessionID}
	}

	now := time.Now().UTC()
	transcript.Messages = append(transcript.Messages, chatentities.Message{
		Role:      "user",
		Content:   message,
		CreatedAt: now,
	})

	reply := s.answer(ctx, transcript, message)
	reply.SessionID = sessionID
	reply.LeadQualified = isQualifiedLead(message)

	transcript.Messages = append(transcript.Messages, chatentities.Message{
		Role:      "assistant",
		Content:   reply.Reply,
		Source:    reply.Source,
		CreatedAt: time.Now().UTC(),
	})

	if err := s.transcriptRepo.Save(transcript); err != nil {
		s.logger.Chat().Error("Failed to persist transcript", "sessionId", sessionID, "error", err.Error())
	}

	return reply
}

// answer tries the hosted LLM once; any failure drops straight to the
// keyword table with no retry.
func (s *ChatService) answer(ctx context.Context, transcript *chatentities.Transcript, message string) *ChatReply {
	if s.llm.Configured() {
		reply, err := s.llm.Complete(ctx, buildPrompt(transcript))
		if err == nil {
			s.logger.Chat().Info("LLM reply", "sessionId", transcript.SessionID, "length", len(reply))
			return &ChatReply{Reply: reply, Suggestions: []string{}, Source: "llm"}
		}
		s.logger.Chat().Warn("LLM call failed, using fallback", "sessionId", transcript.SessionID, "error", err.Error())
	}

	entry := matchFallback(message)
	return &ChatReply{
		Reply:       entry.response,
		Suggestions: entry.suggestions,
		RouteTo:     entry.routeTo,
		Source:      "fallback",
	}
}

func buildPrompt(transcript *chatentities.Transcript) []ai.ChatMessage {
	messages := make([]ai.ChatMessage, 0, len(transcript.Messages)+1)
	messages = append(messages, ai.ChatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range transcript.Messages {
		messages = append(messages, ai.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// matchFallback scans the table in order and returns the first entry with a
// keyword contained in the message, else the trailing catch-all.
func matchFallback(message string) fallbackEntry {
	lowered := strings.ToLower(message)
	for _, entry := range fallbackTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry
			}
		}
	}
	return fallbackTable[len(fallbackTable)-1]
}

func isQualifiedLead(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range leadKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
