package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/ai"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/chat"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

type stubLLM struct {
	configured bool
	reply      string
	err        error
	calls      int
}

func (s *stubLLM) Configured() bool { return s.configured }

func (s *stubLLM) Complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newChatService(t *testing.T, llm ai.Client) (*ChatService, *database.DB) {
	t.Helper()

	db := newTestDB(t)
	logger := newTestLogger(t)
	transcriptRepo := persistence.NewSQLTranscriptRepository(db, logger)
	return NewChatService(transcriptRepo, llm, logger), db
}

func TestChatFallbackWithoutLLMKey(t *testing.T) {
	svc, _ := newChatService(t, &stubLLM{configured: false})

	reply := svc.HandleMessage(context.Background(), "", "What is the price of a website?")

	assert.Equal(t, "fallback", reply.Source)
	assert.Equal(t, "contact", reply.RouteTo)
	assert.True(t, reply.LeadQualified)
	assert.NotEmpty(t, reply.SessionID)
	assert.Contains(t, reply.Suggestions, "Go to the contact form")
}

func TestChatLLMFailureFallsBackWithoutRetry(t *testing.T) {
	llm := &stubLLM{configured: true, err: errors.New("rate limited")}
	svc, _ := newChatService(t, llm)

	reply := svc.HandleMessage(context.Background(), "sess-1", "Tell me about your services")

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "fallback", reply.Source)
	assert.Equal(t, "services", reply.RouteTo)
}

func TestChatLLMReply(t *testing.T) {
	llm := &stubLLM{configured: true, reply: "We build marketing sites."}
	svc, _ := newChatService(t, llm)

	reply := svc.HandleMessage(context.Background(), "sess-2", "hello there")

	assert.Equal(t, "llm", reply.Source)
	assert.Equal(t, "We build marketing sites.", reply.Reply)
	assert.False(t, reply.LeadQualified)
}

func TestChatWildcardCatchAll(t *testing.T) {
	svc, _ := newChatService(t, &stubLLM{configured: false})

	reply := svc.HandleMessage(context.Background(), "", "zzz unmatched gibberish")

	assert.Equal(t, "fallback", reply.Source)
	assert.Empty(t, reply.RouteTo)
	assert.NotEmpty(t, reply.Reply)
	assert.NotEmpty(t, reply.Suggestions)
}

func TestChatTranscriptPersistsAcrossTurns(t *testing.T) {
	svc, db := newChatService(t, &stubLLM{configured: false})
	logger := newTestLogger(t)
	transcriptRepo := persistence.NewSQLTranscriptRepository(db, logger)

	first := svc.HandleMessage(context.Background(), "", "hello")
	svc.HandleMessage(context.Background(), first.SessionID, "what do you offer?")

	transcript, err := transcriptRepo.FindBySession(first.SessionID)
	require.NoError(t, err)
	require.NotNil(t, transcript)
	require.Len(t, transcript.Messages, 4)
	assert.Equal(t, "user", transcript.Messages[0].Role)
	assert.Equal(t, "assistant", transcript.Messages[1].Role)
	assert.Equal(t, "fallback", transcript.Messages[1].Source)
	assert.Equal(t, "what do you offer?", transcript.Messages[2].Content)
}

func TestIsQualifiedLead(t *testing.T) {
	assert.True(t, isQualifiedLead("what's your BUDGET range"))
	assert.True(t, isQualifiedLead("I want to hire you"))
	assert.False(t, isQualifiedLead("hello"))
}
