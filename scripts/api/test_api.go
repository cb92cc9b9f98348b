// Minimal end-to-end integration test for the CrewDesk dispatch API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var (
	baseURL      = getenv("API_URL", "http://localhost:8080/v1")
	clientID     = getenv("CLIENT_ID", "orchestrator-dev")
	clientSecret = getenv("CLIENT_SECRET", "dev-secret-change-me")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	token := authToken()

	scores := computeScores(token)
	log.Printf("scores: %s", scores)

	system := getJSON(token, "/metrics/system")
	log.Printf("system metrics: %s", system)

	fmt.Println("API smoke test passed")
}

func authToken() string {
	body, _ := json.Marshal(map[string]string{
		"clientId":     clientID,
		"clientSecret": clientSecret,
	})
	resp := post("/auth/token", "", body)
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp, &out); err != nil || out.Token == "" {
		log.Fatalf("auth failed: %s", resp)
	}
	return out.Token
}

func computeScores(token string) []byte {
	body, _ := json.Marshal(map[string]any{
		"type":       "content",
		"complexity": "medium",
		"urgency":    "high",
		"domains":    []string{"content"},
		"keywords":   []string{"seo", "blog"},
	})
	return post("/scores", token, body)
}

func post(path, token string, body []byte) []byte {
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(req)
}

func getJSON(token, path string) []byte {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return do(req)
}

func do(req *http.Request) []byte {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		log.Fatalf("read body: %v", err)
	}
	if resp.StatusCode >= 300 {
		log.Fatalf("%s %s: status %d: %s", req.Method, req.URL, resp.StatusCode, buf.String())
	}
	return buf.Bytes()
}
