package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotReq GenerateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"The trend is "},{"text":"worsening."}]}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-flash-latest", time.Second)
	out, err := client.Generate(context.Background(), "Analyze this.")
	require.NoError(t, err)
	require.Equal(t, "The trend is worsening.", out)
	require.Equal(t, "/models/gemini-flash-latest:generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	require.Equal(t, "Analyze this.", gotReq.Contents[0].Parts[0].Text)
}

func TestGenerateMissingCredential(t *testing.T) {
	client := NewClient("", "", "gemini-flash-latest", time.Second)
	require.False(t, client.HasCredential())

	_, err := client.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrNoCredential)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-flash-latest", time.Second)
	out, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, NoResponseText, out)
}

func TestGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-flash-latest", time.Second)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestGenerateInBodyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"invalid model","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-flash-latest", time.Second)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "INVALID_ARGUMENT")
	require.Contains(t, err.Error(), "invalid model")
}

func TestGenerateOnlyFirstCandidateUsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"first"}]}},{"content":{"parts":[{"text":"second"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-flash-latest", time.Second)
	out, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "first", out)
}
