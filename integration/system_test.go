//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:3000")

type product struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

func TestSystem_E2E_Catalog(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var all []product
	getJSON(t, baseURL+"/api/products", &all, http.StatusOK)
	if len(all) == 0 {
		t.Fatalf("expected non-empty products")
	}

	var one product
	getJSON(t, baseURL+"/api/products/"+itoa(all[0].ID), &one, http.StatusOK)
	if one != all[0] {
		t.Fatalf("product=%+v want=%+v", one, all[0])
	}

	var hits []product
	getJSON(t, baseURL+"/api/products?q="+firstWord(all[0].Title), &hits, http.StatusOK)
	if len(hits) == 0 {
		t.Fatalf("search by title word found nothing")
	}

	getJSON(t, baseURL+"/api/products/999999", nil, http.StatusNotFound)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	for ctx.Err() == nil {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getJSON(t *testing.T, url string, out any, want int) {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("GET %s: status=%d want=%d", url, resp.StatusCode, want)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
