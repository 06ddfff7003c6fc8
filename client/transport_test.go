package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/pkg/dialogue"
	"github.com/pubfindco/pubfind/pkg/search"
)

func TestHTTPTransportRoundTrip(t *testing.T) {
	var got search.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response":             "Found 1 record.",
			"results":              []map[string]any{{"name": "Zoe Khan", "phone": "021-1111"}},
			"needs_disambiguation": false,
			"action":               "search",
		})
	}))
	defer srv.Close()

	logger, _ := zap.NewDevelopment()
	tr := NewHTTPTransport(srv.URL+"/", time.Second, logger) // trailing slash is trimmed

	resp, err := tr.Chat(context.Background(), &search.ChatRequest{
		Query:               "Find Zoe Khan",
		ConversationHistory: []dialogue.Turn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Find Zoe Khan", got.Query)
	assert.Len(t, got.ConversationHistory, 2)
	assert.Equal(t, "Found 1 record.", resp.Response)
	require.Len(t, resp.Results, 1)
	name, _ := resp.Results[0].Attr(search.AttrName)
	assert.Equal(t, "Zoe Khan", name)
}

func TestHTTPTransportNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	logger, _ := zap.NewDevelopment()
	tr := NewHTTPTransport(srv.URL, time.Second, logger)

	_, err := tr.Chat(context.Background(), &search.ChatRequest{Query: "q"})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "500")
}

func TestHTTPTransportMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	logger, _ := zap.NewDevelopment()
	tr := NewHTTPTransport(srv.URL, time.Second, logger)

	_, err := tr.Chat(context.Background(), &search.ChatRequest{Query: "q"})
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestHTTPTransportUnreachableServer(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	// Port 1 is essentially guaranteed to refuse connections.
	tr := NewHTTPTransport("http://127.0.0.1:1", 500*time.Millisecond, logger)

	_, err := tr.Chat(context.Background(), &search.ChatRequest{Query: "q"})
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestHTTPTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	logger, _ := zap.NewDevelopment()
	tr := NewHTTPTransport(srv.URL, 50*time.Millisecond, logger)

	start := time.Now()
	_, err := tr.Chat(context.Background(), &search.ChatRequest{Query: "q"})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Less(t, time.Since(start), 5*time.Second, "hung request must not block forever")
}
