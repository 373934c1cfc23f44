package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trades = []string{"General", "Electrical", "Plumbing", "HVAC"}

func claudeServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Messages[0].Content, "Allowed trades: General, Electrical, Plumbing, HVAC")

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"type":"overloaded_error","message":"busy"}}`))
			return
		}
		resp := map[string]any{"content": []map[string]string{{"type": "text", "text": text}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestSuggestTrade_RespuestaConMarkdown(t *testing.T) {
	srv := claudeServer(t, http.StatusOK, "```json\n{\"trade\":\"plumbing\",\"confidence\":1.4,\"reasoning\":\"Leak under sink\"}\n```")
	defer srv.Close()

	s := NewAnthropicService("test-key", "model").WithEndpoint(srv.URL)
	res, err := s.SuggestTrade(context.Background(), "", "Leaking trap", "Kitchen", trades)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", res.Trade)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "Leak under sink", res.Reasoning)
}

func TestSuggestTrade_ErrorDeAPI(t *testing.T) {
	srv := claudeServer(t, http.StatusServiceUnavailable, "")
	defer srv.Close()

	s := NewAnthropicService("test-key", "model").WithEndpoint(srv.URL)
	_, err := s.SuggestTrade(context.Background(), "x", "", "", trades)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded_error")
}

func TestSuggestTrade_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "model").SuggestTrade(context.Background(), "x", "", "", trades)
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`Sure! {"a":1}`))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Empty(t, extractJSON("no json here"))
}
