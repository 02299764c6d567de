package notegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharva2922/notesgenai/ai/core/llm"
	"github.com/Atharva2922/notesgenai/ai/metrics"
	"github.com/Atharva2922/notesgenai/ai/purpose"
)

// mockLLM implements llm.Service for testing.
type mockLLM struct {
	chatResponse       string
	chatErr            error
	structuredResponse string
	structuredErr      error
	visionResponse     string
	visionErr          error
	stats              *llm.LLMCallStats

	lastMessages []llm.Message
	warmupCalled bool
}

func (m *mockLLM) callStats() *llm.LLMCallStats {
	if m.stats != nil {
		return m.stats
	}
	return &llm.LLMCallStats{}
}

func (m *mockLLM) Chat(_ context.Context, messages []llm.Message) (string, *llm.LLMCallStats, error) {
	m.lastMessages = messages
	return m.chatResponse, m.callStats(), m.chatErr
}

func (m *mockLLM) ChatStructured(_ context.Context, messages []llm.Message, _ *llm.ResponseSchema) (string, *llm.LLMCallStats, error) {
	m.lastMessages = messages
	return m.structuredResponse, m.callStats(), m.structuredErr
}

func (m *mockLLM) ChatVision(_ context.Context, _ string, _ []byte, _ string) (string, *llm.LLMCallStats, error) {
	return m.visionResponse, m.callStats(), m.visionErr
}

func (m *mockLLM) Warmup(_ context.Context) {
	m.warmupCalled = true
}

const validNoteJSON = `{
	"title": "Remote Title",
	"summary": "Remote summary.",
	"formattedContent": "## Remote\nBody",
	"tags": ["one", "two", "three"]
}`

func TestService_GenerateNote_RemoteSuccess(t *testing.T) {
	mock := &mockLLM{structuredResponse: validNoteJSON}
	svc := NewService(mock, nil)

	note, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "Remote Title", note.Title)
	assert.Equal(t, []string{"one", "two", "three"}, note.Tags)
}

func TestService_GenerateNote_RemoteSuccessWithCodeFence(t *testing.T) {
	mock := &mockLLM{structuredResponse: "```json\n" + validNoteJSON + "\n```"}
	svc := NewService(mock, nil)

	note, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "Remote Title", note.Title)
}

func TestService_GenerateNote_TransportFailureFallsBack(t *testing.T) {
	mock := &mockLLM{structuredErr: errors.New("connection refused")}
	svc := NewService(mock, nil)

	note, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, purpose.Lookup(purpose.TagSummary))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(note.Title, "— Summary"))
	assert.Contains(t, note.FormattedContent, "## Executive Summary")
}

func TestService_GenerateNote_MalformedResponseFallsBack(t *testing.T) {
	mock := &mockLLM{structuredResponse: "here are your notes, nicely formatted!"}
	svc := NewService(mock, nil)

	note, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, nil)
	require.NoError(t, err)
	assert.Contains(t, note.Tags, "ai-fallback")
}

func TestService_GenerateNote_NilLLMFallsBack(t *testing.T) {
	svc := NewService(nil, nil)

	note, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, note.Title)
	assert.NotEmpty(t, note.FormattedContent)
	assert.Contains(t, note.Tags, "ai-fallback")
}

func TestService_GenerateNote_EmptyInputNeverFails(t *testing.T) {
	svc := NewService(nil, nil)

	note, err := svc.GenerateNote(context.Background(), "", GenerationConfig{}, nil)
	require.NoError(t, err)
	assert.Contains(t, []string{"AI Draft", "Untitled Note"}, note.Title)
	assert.NotEmpty(t, note.FormattedContent)
}

func TestService_GenerateNote_PurposeInstructionsAppended(t *testing.T) {
	mock := &mockLLM{structuredResponse: validNoteJSON}
	svc := NewService(mock, nil)

	def := purpose.Lookup(purpose.TagFlashcards)
	_, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, def)
	require.NoError(t, err)

	require.Len(t, mock.lastMessages, 2)
	assert.Equal(t, "system", mock.lastMessages[0].Role)
	assert.Contains(t, mock.lastMessages[0].Content, def.Label)
	assert.Contains(t, mock.lastMessages[1].Content, actionRequestedMarker+" "+def.Instructions)
}

func TestService_GenerateNote_RecordsMetrics(t *testing.T) {
	recorder := metrics.NewRecorder(metrics.DefaultConfig())
	svc := NewService(nil, recorder)

	_, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, nil)
	require.NoError(t, err)
	// Recording must not panic with a live recorder; exported values are
	// covered in the metrics package tests.
}

// scrapeMetrics returns the Prometheus exposition text for the recorder.
func scrapeMetrics(t *testing.T, recorder *metrics.Recorder) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(w, req)
	return w.Body.String()
}

func TestService_GenerateNote_RecordsTokens(t *testing.T) {
	recorder := metrics.NewRecorder(metrics.DefaultConfig())
	mock := &mockLLM{
		structuredResponse: validNoteJSON,
		stats:              &llm.LLMCallStats{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160},
	}
	svc := NewService(mock, recorder)

	_, err := svc.GenerateNote(context.Background(), sampleContent, defaultCfg, nil)
	require.NoError(t, err)

	body := scrapeMetrics(t, recorder)
	assert.Contains(t, body, `notesgenai_notegen_llm_tokens_total{token_type="prompt"} 120`)
	assert.Contains(t, body, `notesgenai_notegen_llm_tokens_total{token_type="completion"} 40`)
}

func TestService_ChatWithAI_RecordsOutcome(t *testing.T) {
	recorder := metrics.NewRecorder(metrics.DefaultConfig())

	ok := NewService(&mockLLM{
		chatResponse: "hello there",
		stats:        &llm.LLMCallStats{PromptTokens: 10, CompletionTokens: 5},
	}, recorder)
	assert.Equal(t, "hello there", ok.ChatWithAI(context.Background(), []llm.Message{llm.UserMessage("hi")}))

	failing := NewService(&mockLLM{chatErr: errors.New("connection reset")}, recorder)
	assert.Equal(t, chatApology, failing.ChatWithAI(context.Background(), []llm.Message{llm.UserMessage("hi")}))

	body := scrapeMetrics(t, recorder)
	assert.Contains(t, body, `notesgenai_notegen_chat_requests_total{status="ok"} 1`)
	assert.Contains(t, body, `notesgenai_notegen_chat_requests_total{status="error"} 1`)
	assert.Contains(t, body, `notesgenai_notegen_llm_tokens_total{token_type="prompt"} 10`)
}

func TestService_Warmup(t *testing.T) {
	mock := &mockLLM{}
	svc := NewService(mock, nil)

	svc.Warmup(context.Background())
	assert.True(t, mock.warmupCalled)
}

func TestService_Warmup_Disabled(t *testing.T) {
	svc := NewService(nil, nil)
	svc.Warmup(context.Background()) // must not panic
}

func TestService_GenerateBatch_PreservesOrder(t *testing.T) {
	svc := NewService(nil, nil)

	inputs := make([]Request, 8)
	for i := range inputs {
		inputs[i] = Request{
			RawContent: fmt.Sprintf("Item number %d is here. It matters.", i),
			Config:     defaultCfg,
		}
	}

	notes := svc.GenerateBatch(context.Background(), inputs)
	require.Len(t, notes, len(inputs))
	for i, note := range notes {
		require.NotNil(t, note, "note %d missing", i)
		assert.Contains(t, note.Title, fmt.Sprintf("Item number %d", i))
	}
}

func TestService_ChatWithAI(t *testing.T) {
	mock := &mockLLM{chatResponse: "hello back"}
	svc := NewService(mock, nil)

	reply := svc.ChatWithAI(context.Background(), []llm.Message{llm.UserMessage("hello")})
	assert.Equal(t, "hello back", reply)
}

func TestService_ChatWithAI_Apology(t *testing.T) {
	tests := []struct {
		name string
		svc  *Service
	}{
		{"nil llm", NewService(nil, nil)},
		{"chat error", NewService(&mockLLM{chatErr: errors.New("boom")}, nil)},
		{"empty response", NewService(&mockLLM{chatResponse: ""}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := tt.svc.ChatWithAI(context.Background(), []llm.Message{llm.UserMessage("hi")})
			assert.Equal(t, chatApology, reply)
		})
	}
}

func TestService_AnalyzeImageNote(t *testing.T) {
	mock := &mockLLM{visionResponse: validNoteJSON}
	svc := NewService(mock, nil)

	note := svc.AnalyzeImageNote(context.Background(), []byte{0x01}, "image/png", "")
	assert.Equal(t, "Remote Title", note.Title)
}

func TestService_AnalyzeImageNote_ApologyOnFailure(t *testing.T) {
	tests := []struct {
		name string
		svc  *Service
	}{
		{"nil llm", NewService(nil, nil)},
		{"vision error", NewService(&mockLLM{visionErr: errors.New("boom")}, nil)},
		{"malformed payload", NewService(&mockLLM{visionResponse: "not json"}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := tt.svc.AnalyzeImageNote(context.Background(), []byte{0x01}, "image/png", "what is this")
			require.NotNil(t, note)
			assert.Equal(t, "Image Note", note.Title)
			assert.Equal(t, chatApology, note.FormattedContent)
		})
	}
}

func TestStructuredNote_ToRecord(t *testing.T) {
	note := &StructuredNote{
		Title:            "T",
		Summary:          "S",
		FormattedContent: "C",
		Tags:             []string{"a", "b"},
	}

	record := note.ToRecord(SourceFallback)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "T", record.Title)
	assert.Equal(t, "C", record.Content)
	assert.Equal(t, SourceFallback, record.Type)

	other := note.ToRecord(SourceFallback)
	assert.NotEqual(t, record.ID, other.ID, "each record gets a fresh id")
}
