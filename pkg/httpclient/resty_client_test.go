package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsHeadersAndAdaptsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "probe" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("X-Key", "1")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"User-Agent": "probe"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusNotFound || resp.Status() != "Not Found" {
		t.Fatalf("unexpected status %d %q", resp.StatusCode(), resp.Status())
	}
	if string(resp.Body()) != "missing" || resp.Header().Get("X-Key") != "1" {
		t.Fatalf("unexpected body/header %q %v", resp.Body(), resp.Header())
	}
}

func TestRestyClientDoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			t.Errorf("redirect should not be followed")
		}
		http.Redirect(w, r, "/moved", http.StatusFound)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(2*time.Second).Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode())
	}
	if loc := resp.Header().Get("Location"); loc != "/moved" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestRestyClientTimeoutIsNetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewRestyClient(50*time.Millisecond).Get(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected net.Error timeout, got %T %v", err, err)
	}
}

func TestReasonPhrase(t *testing.T) {
	cases := []struct {
		code   int
		status string
		want   string
	}{
		{200, "200 OK", "OK"},
		{404, "404 Not Found", "Not Found"},
		{503, "503", "Service Unavailable"},
		{599, "", ""},
		{299, "299 Custom Thing", "Custom Thing"},
	}
	for _, tc := range cases {
		if got := ReasonPhrase(tc.code, tc.status); got != tc.want {
			t.Fatalf("ReasonPhrase(%d, %q) = %q, want %q", tc.code, tc.status, got, tc.want)
		}
	}
}
