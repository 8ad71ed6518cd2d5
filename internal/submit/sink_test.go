package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luminamente/anima/internal/identity"
	"github.com/luminamente/anima/internal/ledger"
)

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New(ledger.InstrumentBurnout, []ledger.Question{
		{ID: 1, Text: "Sente-se esgotado?", Kind: ledger.KindChoice, Options: []string{"A", "B", "C", "D", "E"}},
		{ID: 2, Text: "Dorme bem?", Kind: ledger.KindChoice, Options: []string{"A", "B", "C", "D", "E"}},
	})
	l.SetAnswer(1, "D")
	l.SetAnswer(2, "B")
	return l
}

func testUser() identity.User {
	return identity.User{
		ID:    "u-1",
		Name:  "Maria",
		Email: "maria@example.com",
		Token: "local-session-token",
	}
}

func TestWebhookSinkPostsPayload(t *testing.T) {
	var got Payload
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPayload(testUser(), testLedger(t))
	sink := NewWebhookSink(srv.URL)
	if err := sink.Submit(context.Background(), p); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if contentType != "application/json" {
		t.Errorf("content type = %q", contentType)
	}
	if got.TestType != ledger.InstrumentBurnout {
		t.Errorf("testType = %q, want burnout", got.TestType)
	}
	if got.User.Name != "Maria" {
		t.Errorf("user name = %q", got.User.Name)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(got.Questions))
	}
	if got.Questions[0].Answer == nil || *got.Questions[0].Answer != "D" {
		t.Error("first answer lost in transit")
	}
	if got.CompletedAt == "" {
		t.Error("completedAt missing")
	}
}

func TestWebhookSinkStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL)
	err := sink.Submit(context.Background(), NewPayload(testUser(), testLedger(t)))

	var status *ErrStatus
	if !errors.As(err, &status) {
		t.Fatalf("err = %v, want *ErrStatus", err)
	}
	if status.Code != http.StatusBadGateway {
		t.Errorf("code = %d, want 502", status.Code)
	}
}

func TestWebhookSinkNoEndpoint(t *testing.T) {
	sink := NewWebhookSink("")
	err := sink.Submit(context.Background(), NewPayload(testUser(), testLedger(t)))
	if !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("err = %v, want ErrNoEndpoint", err)
	}
}

func TestWebhookSinkContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := NewWebhookSink(srv.URL)
	err := sink.Submit(ctx, NewPayload(testUser(), testLedger(t)))
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
