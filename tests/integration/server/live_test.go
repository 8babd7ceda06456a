package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trend-goat/trend-goat/internal/server"
	"github.com/trend-goat/trend-goat/tests/testutil"
)

func TestLive_BroadcastsAfterIngest(t *testing.T) {
	s := testutil.SetupTestStore(t)
	srv := server.New(s, 0, "")

	if _, err := s.CreateExperiment(context.Background(), "hero", []string{"A", "B"}); err != nil {
		t.Fatalf("CreateExperiment failed: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live?experiment=hero"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	body := `{"experiment":"hero","date":"2024-01-01","variant":"0","visits":200,"conversions":50}`
	resp, err := http.Post(ts.URL+"/api/record", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to post record: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read broadcast: %v", err)
	}

	var pushed chartResponse
	if err := json.Unmarshal(payload, &pushed); err != nil {
		t.Fatalf("failed to decode broadcast: %v", err)
	}

	if pushed.Experiment != "hero" {
		t.Errorf("expected broadcast for hero, got %s", pushed.Experiment)
	}
	if len(pushed.Points) != 1 {
		t.Fatalf("expected 1 point in broadcast, got %d", len(pushed.Points))
	}
	if pushed.Points[0].Values["0"] != 25 {
		t.Errorf("expected rate 25 in broadcast, got %v", pushed.Points[0].Values["0"])
	}
}

func TestLive_UnknownExperimentRejected(t *testing.T) {
	s := testutil.SetupTestStore(t)
	srv := server.New(s, 0, "")

	req := httptest.NewRequest(http.MethodGet, "/live?experiment=ghost", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
