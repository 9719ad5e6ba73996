package form

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitPostsMultipartWithAcceptHeader(t *testing.T) {
	var gotAccept, gotName, gotMessage string
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAccept = r.Header.Get("Accept")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotName = r.FormValue("name")
		gotMessage = r.FormValue("message")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	err := s.Submit(context.Background(), []Field{
		{Name: "name", Value: "Ada"},
		{Name: "message", Value: "hello there"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %s, want POST", gotMethod)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if gotName != "Ada" || gotMessage != "hello there" {
		t.Fatalf("fields = (%q, %q)", gotName, gotMessage)
	}
}

func TestSubmitTreatsNon2xxAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	if err := s.Submit(context.Background(), []Field{{Name: "name", Value: "x"}}); err == nil {
		t.Fatalf("expected error for 422 response")
	}
}

func TestSubmitReportsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := NewSubmitter(srv.URL)
	if err := s.Submit(context.Background(), []Field{{Name: "name", Value: "x"}}); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestGenerationOrdersSubmissions(t *testing.T) {
	s := NewSubmitter("http://127.0.0.1:0")
	first := s.Begin()
	second := s.Begin()
	if s.Current(first) {
		t.Fatalf("first generation must be stale after a second submission")
	}
	if !s.Current(second) {
		t.Fatalf("latest generation must be current")
	}
}

func TestButtonPresentationPerPhase(t *testing.T) {
	cases := []struct {
		phase    Phase
		label    string
		disabled bool
		colored  bool
	}{
		{PhaseIdle, "Send Message →", false, false},
		{PhaseSending, "Sending...", true, false},
		{PhaseSuccess, "✓ Message sent!", true, true},
		{PhaseError, "Something went wrong — try again", false, true},
	}
	for _, tc := range cases {
		b := ButtonFor(tc.phase)
		if b.Label != tc.label {
			t.Fatalf("phase %d label = %q, want %q", tc.phase, b.Label, tc.label)
		}
		if b.Disabled != tc.disabled {
			t.Fatalf("phase %d disabled = %v, want %v", tc.phase, b.Disabled, tc.disabled)
		}
		if (b.Background != "") != tc.colored {
			t.Fatalf("phase %d background = %q", tc.phase, b.Background)
		}
	}
}
