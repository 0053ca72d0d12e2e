package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eduintel/eli-api/pkg/config"
	appErrors "github.com/eduintel/eli-api/pkg/errors"
)

func geminiOKHandler(t *testing.T, text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"` + text + `"}]}}]}`))
	}
}

func TestGeminiClientGenerate(t *testing.T) {
	srv := httptest.NewServer(geminiOKHandler(t, "solid fundamentals"))
	defer srv.Close()

	client := NewGeminiClient(config.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.0-flash",
	}, nil)

	text, err := client.Generate(context.Background(), "be helpful", "analyze this")
	require.NoError(t, err)
	require.Equal(t, "solid fundamentals", text)
}

func TestGeminiClientGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(config.GeminiConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)

	_, err := client.Generate(context.Background(), "", "analyze this")
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrAgentFailure))
}

func TestGeminiClientGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewGeminiClient(config.GeminiConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "", "analyze this")
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrAgentTimeout))
}

func TestGeminiClientGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(config.GeminiConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)

	_, err := client.Generate(context.Background(), "", "analyze this")
	require.True(t, appErrors.Is(err, appErrors.ErrAgentFailure))
}
