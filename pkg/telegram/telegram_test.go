package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordingServer captures sendMessage requests and answers with the status
// codes it was scripted with (200 when the script runs out).
type recordingServer struct {
	mu       sync.Mutex
	paths    []string
	chatIDs  []string
	texts    []string
	statuses []int
}

func (s *recordingServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		s.chatIDs = append(s.chatIDs, r.PostForm.Get("chat_id"))
		s.texts = append(s.texts, r.PostForm.Get("text"))
		status := http.StatusOK
		if len(s.statuses) > 0 {
			status = s.statuses[0]
			s.statuses = s.statuses[1:]
		}
		s.mu.Unlock()

		w.WriteHeader(status)
		w.Write([]byte(`{"ok":true}`))
	})
}

var testCreds = Credentials{Token: "123:ABC", ChatID: "42"}

func TestSendMessageFormEncoding(t *testing.T) {
	rec := &recordingServer{}
	server := httptest.NewServer(rec.handler())
	defer server.Close()

	client := NewClient(server.URL)
	status, err := client.SendMessage(context.Background(), testCreds, "hello there")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}

	if got, want := rec.paths[0], "/bot123:ABC/sendMessage"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if got, want := rec.chatIDs[0], "42"; got != want {
		t.Errorf("chat_id = %q, want %q", got, want)
	}
	if got, want := rec.texts[0], "hello there"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestSendMessageNon200(t *testing.T) {
	rec := &recordingServer{statuses: []int{http.StatusForbidden}}
	server := httptest.NewServer(rec.handler())
	defer server.Close()

	client := NewClient(server.URL)
	status, err := client.SendMessage(context.Background(), testCreds, "hi")
	if err == nil {
		t.Fatal("SendMessage() error = nil, want an error for status 403")
	}
	if status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", status)
	}
}

func TestDispatchSendsInOrder(t *testing.T) {
	rec := &recordingServer{}
	server := httptest.NewServer(rec.handler())
	defer server.Close()

	client := NewClient(server.URL)
	texts := []string{"first", "second", "third"}

	outcomes := client.Dispatch(context.Background(), testCreds, texts)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if !o.OK() {
			t.Errorf("outcome %d failed: %v", i, o.Err)
		}
		if o.Ordinal != i+1 {
			t.Errorf("outcome %d Ordinal = %d, want %d", i, o.Ordinal, i+1)
		}
	}

	// The server must have observed the texts in dispatch order.
	for i, want := range texts {
		if rec.texts[i] != want {
			t.Errorf("server text %d = %q, want %q", i, rec.texts[i], want)
		}
	}
}

func TestDispatchContinuesAfterFailure(t *testing.T) {
	rec := &recordingServer{statuses: []int{http.StatusOK, http.StatusBadGateway, http.StatusOK}}
	server := httptest.NewServer(rec.handler())
	defer server.Close()

	client := NewClient(server.URL)
	outcomes := client.Dispatch(context.Background(), testCreds, []string{"a", "b", "c"})

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if !outcomes[0].OK() {
		t.Errorf("outcome 1 failed: %v", outcomes[0].Err)
	}
	if outcomes[1].OK() {
		t.Error("outcome 2 succeeded, want failure")
	}
	if outcomes[1].StatusCode != http.StatusBadGateway {
		t.Errorf("outcome 2 StatusCode = %d, want 502", outcomes[1].StatusCode)
	}
	if !outcomes[2].OK() {
		t.Errorf("outcome 3 failed: %v", outcomes[2].Err)
	}

	// All three requests reached the server despite the middle failure.
	if len(rec.texts) != 3 {
		t.Errorf("server saw %d requests, want 3", len(rec.texts))
	}
}

func TestDispatchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	outcomes := client.Dispatch(context.Background(), testCreds, []string{"a", "b"})

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.OK() {
			t.Errorf("outcome %d succeeded against a closed server", i)
		}
		if o.StatusCode != 0 {
			t.Errorf("outcome %d StatusCode = %d, want 0 for a transport failure", i, o.StatusCode)
		}
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client := NewClient("")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}

	client = NewClient("https://example.test/")
	if client.baseURL != "https://example.test" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
}
