package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bumperr/gPBL-G8/internal/common/config"
	"github.com/bumperr/gPBL-G8/internal/common/database"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

type indexRequest struct {
	method string
	path   string
	body   map[string]interface{}
}

// fakeCluster stands in for Elasticsearch; the client's product check needs
// the X-Elastic-Product header on every response.
func fakeCluster(t *testing.T, status int) (*database.ElasticsearchClient, chan indexRequest) {
	requests := make(chan indexRequest, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			json.Unmarshal(raw, &body)
		}
		requests <- indexRequest{method: r.Method, path: r.URL.Path, body: body}

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"result":"created"}`))
	}))
	t.Cleanup(srv.Close)

	es, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	return es, requests
}

func sampleResolution() *models.Resolution {
	return &models.Resolution{
		RequestID:  "req-123",
		Text:       "turn off the bedroom lights",
		Source:     "intent",
		Intent:     "bedroom_lights",
		Confidence: 0.8,
		Topic:      "home/bedroom/lights/cmd",
		Payload:    "OFF",
		Dispatched: true,
		Timestamp:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ==========================
// Recorder Tests
// ==========================

func TestRecorder_Record(t *testing.T) {
	es, requests := fakeCluster(t, http.StatusCreated)
	r := NewRecorder(es, "assist-resolutions", true, createTestLogger(t))

	r.Record(context.Background(), sampleResolution())

	select {
	case req := <-requests:
		assert.Equal(t, http.MethodPut, req.method)
		assert.Equal(t, "/assist-resolutions/_doc/req-123", req.path)
		assert.Equal(t, "turn off the bedroom lights", req.body["text"])
		assert.Equal(t, "intent", req.body["source"])
	case <-time.After(2 * time.Second):
		t.Fatal("no index request reached the cluster")
	}
}

func TestRecorder_ClusterErrorIsSwallowed(t *testing.T) {
	es, requests := fakeCluster(t, http.StatusInternalServerError)
	r := NewRecorder(es, "assist-resolutions", true, createTestLogger(t))

	// must not panic or block
	r.Record(context.Background(), sampleResolution())

	select {
	case <-requests:
	case <-time.After(2 * time.Second):
		t.Fatal("no index request reached the cluster")
	}
}

func TestRecorder_DisabledDoesNothing(t *testing.T) {
	es, requests := fakeCluster(t, http.StatusCreated)
	r := NewRecorder(es, "assist-resolutions", false, createTestLogger(t))

	r.Record(context.Background(), sampleResolution())

	select {
	case <-requests:
		t.Fatal("disabled recorder must not index")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRecorder_NilClientDoesNothing(t *testing.T) {
	r := NewRecorder(nil, "assist-resolutions", true, createTestLogger(t))
	assert.NotPanics(t, func() {
		r.Record(context.Background(), sampleResolution())
	})
}
