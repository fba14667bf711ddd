package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeepLClient_Translate(t *testing.T) {
	var gotPath, gotAuth, gotText, gotTarget string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotText = r.FormValue("text")
		gotTarget = r.FormValue("target_lang")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations": [{"text": "Hola a todos."}]}`))
	}))
	defer srv.Close()

	client := NewDeepLClient("dl-test", srv.URL)
	got, err := client.Translate(context.Background(), "Hello everyone.", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v2/translate" {
		t.Errorf("path = %q, want /v2/translate", gotPath)
	}
	if gotAuth != "DeepL-Auth-Key dl-test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotText != "Hello everyone." {
		t.Errorf("text = %q", gotText)
	}
	if gotTarget != "ES" {
		t.Errorf("target_lang = %q, want ES", gotTarget)
	}
	if got != "Hola a todos." {
		t.Errorf("translation = %q", got)
	}
}

func TestDeepLClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewDeepLClient("dl-test", srv.URL)
	if _, err := client.Translate(context.Background(), "hello", "it"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestDeepLClient_EmptyTranslations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations": []}`))
	}))
	defer srv.Close()

	client := NewDeepLClient("dl-test", srv.URL)
	if _, err := client.Translate(context.Background(), "hello", "it"); err == nil {
		t.Fatal("expected error for empty translations")
	}
}

func TestDeepLClient_MissingKey(t *testing.T) {
	client := NewDeepLClient("", "")
	if _, err := client.Translate(context.Background(), "hello", "it"); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
