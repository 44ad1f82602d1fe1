package signalwire

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onurcolak/sms-relay/environments"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(environments.SignalWireConfig{
		Space:     server.URL,
		ProjectID: "project-1",
		APIToken:  "token-1",
		Context:   "office",
		Timeout:   2 * time.Second,
	})
}

func TestSendMessage_PostsLaMLForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/laml/2010-04-01/Accounts/project-1/Messages.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		user, pass, ok := r.BasicAuth()
		if !ok || user != "project-1" || pass != "token-1" {
			t.Errorf("unexpected basic auth %q/%q", user, pass)
		}

		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("From"); got != "+15550000001" {
			t.Errorf("expected From=+15550000001, got %q", got)
		}
		if got := r.PostForm.Get("To"); got != "+15551234567" {
			t.Errorf("expected To=+15551234567, got %q", got)
		}
		if got := r.PostForm.Get("Body"); got != "hello" {
			t.Errorf("expected Body=hello, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	})

	sent, err := client.SendMessage(context.Background(), "15550000001", "+15551234567", "hello")
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if sent.SID != "SM1" || sent.Status != "queued" {
		t.Fatalf("unexpected response: %+v", sent)
	}
}

func TestSendMessage_ErrorStatusIsNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"invalid To number"}`))
	})

	_, err := client.SendMessage(context.Background(), "15550000001", "1", "hello")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 request, got %d", calls)
	}
}

func TestBuyPhoneNumber_SearchBuyAndSetContext(t *testing.T) {
	var steps []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/relay/rest/phone_numbers/search":
			steps = append(steps, "search")
			if r.URL.Query().Get("number_type") != "local" {
				t.Errorf("expected number_type=local")
			}
			_, _ = w.Write([]byte(`{"data":[{"e164":"+15559990000"},{"e164":"+15559990001"}]}`))

		case r.Method == http.MethodPost && r.URL.Path == "/api/relay/rest/phone_numbers":
			steps = append(steps, "buy")
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["number"] != "+15559990000" {
				t.Errorf("expected first available number, got %q", body["number"])
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"pn-1","number":"+15559990000"}`))

		case r.Method == http.MethodPut && r.URL.Path == "/api/relay/rest/phone_numbers/pn-1":
			steps = append(steps, "context")
			var body relayContextRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.MessageHandler != "relay_context" || body.MessageRelayContext != "office" {
				t.Errorf("unexpected relay context request: %+v", body)
			}
			_, _ = w.Write([]byte(`{}`))

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	number, err := client.BuyPhoneNumber(context.Background())
	if err != nil {
		t.Fatalf("BuyPhoneNumber returned error: %v", err)
	}
	if number != "+15559990000" {
		t.Fatalf("expected +15559990000, got %q", number)
	}
	if len(steps) != 3 || steps[0] != "search" || steps[1] != "buy" || steps[2] != "context" {
		t.Fatalf("unexpected request sequence %v", steps)
	}
}

func TestBuyPhoneNumber_NoneAvailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.BuyPhoneNumber(context.Background())
	if !errors.Is(err, ErrNoNumbersAvailable) {
		t.Fatalf("expected ErrNoNumbersAvailable, got %v", err)
	}
}

func TestBaseURL(t *testing.T) {
	cases := map[string]string{
		"example.signalwire.com": "https://example.signalwire.com",
		"https://example.test/":  "https://example.test",
		"http://127.0.0.1:8080":  "http://127.0.0.1:8080",
	}

	for in, want := range cases {
		if got := baseURL(in); got != want {
			t.Errorf("baseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
