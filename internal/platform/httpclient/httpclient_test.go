package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestClient_GetJSON_SendsHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Debug-User-ID") != "user-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/notifications" || r.URL.Query().Get("lookahead_days") != "3" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"upcoming-1"}]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", time.Second, WithHeader("X-Debug-User-ID", "user-1"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out []struct {
		ID string `json:"id"`
	}
	if err := c.GetJSON(context.Background(), "notifications", url.Values{"lookahead_days": {"3"}}, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(out) != 1 || out[0].ID != "upcoming-1" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestClient_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, time.Second)
	err := c.GetJSON(context.Background(), "/pets", nil, nil)
	if StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestClient_RelativePathRequiresBaseURL(t *testing.T) {
	c, _ := New("", time.Second)
	if err := c.GetJSON(context.Background(), "/pets", nil, nil); err == nil {
		t.Fatalf("expected error for relative path without base url")
	}
	if _, err := New("::not a url", time.Second); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
