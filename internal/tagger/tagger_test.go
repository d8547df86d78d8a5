package tagger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tag" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		tags := make([]string, len(req.Tokens))
		for i := range tags {
			tags[i] = "NN"
		}
		tags[0] = "PRP"
		json.NewEncoder(w).Encode(tagResponse{Tags: tags})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	tags, err := c.Tag(context.Background(), []string{"I", "walked"})
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if len(tags) != 2 || tags[0] != "PRP" {
		t.Errorf("tags = %v", tags)
	}
}

func TestTag_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}},
		{"count mismatch", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(tagResponse{Tags: []string{"NN"}})
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			if _, err := NewClient(srv.URL).Tag(context.Background(), []string{"a", "b"}); err == nil {
				t.Error("expected error")
			}
		})
	}
}
