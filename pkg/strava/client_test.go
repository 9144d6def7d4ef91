package strava

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(apiUrl string) *Client {
	return &Client{
		ApiUrl:         apiUrl,
		ClientId:       "client-id",
		ClientSecret:   "client-secret",
		AccessToken:    "access-token",
		RefreshToken:   "refresh-token",
		TokenExpiresAt: time.Now().Add(1 * time.Hour),
	}
}

func TestGetAthleteStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/v3/athlete":
			json.NewEncoder(w).Encode(Athlete{ID: 42, Firstname: "Jane", Lastname: "Doe", Weight: 60})
		case "/api/v3/athletes/42/stats":
			json.NewEncoder(w).Encode(ActivityStats{
				RecentRunTotals: ActivityTotal{Count: 8, Distance: 80000, MovingTime: 28800},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	athlete, err := client.GetAthlete(context.Background())
	if err != nil {
		t.Fatalf("GetAthlete: %v", err)
	}
	if athlete.ID != 42 || athlete.Firstname != "Jane" {
		t.Errorf("unexpected athlete: %+v", athlete)
	}

	stats, err := client.GetAthleteStats(context.Background(), athlete.ID)
	if err != nil {
		t.Fatalf("GetAthleteStats: %v", err)
	}
	if stats.RecentRunTotals.Count != 8 {
		t.Errorf("recent run count = %v, want 8", stats.RecentRunTotals.Count)
	}
}

func TestGetAthleteUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetAthlete(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "activity:read_all") {
		t.Errorf("error should name required scopes, got: %v", err)
	}
}

func TestTokenRefresh(t *testing.T) {
	refreshed := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			if r.Method != http.MethodPost {
				t.Errorf("token request method = %v, want POST", r.Method)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse token form: %v", err)
			}
			if r.URL.RawQuery != "" {
				t.Errorf("credentials leaked into the query string: %v", r.URL.RawQuery)
			}
			if r.PostForm.Get("grant_type") != "refresh_token" {
				t.Errorf("grant_type = %v, want refresh_token", r.PostForm.Get("grant_type"))
			}
			if r.PostForm.Get("refresh_token") != "refresh-token" {
				t.Errorf("refresh_token = %v, want refresh-token", r.PostForm.Get("refresh_token"))
			}
			if r.PostForm.Get("client_secret") != "client-secret" {
				t.Errorf("client_secret = %v, want client-secret", r.PostForm.Get("client_secret"))
			}
			refreshed = true
			json.NewEncoder(w).Encode(tokenResponse{
				AccessToken:  "fresh-token",
				RefreshToken: "fresh-refresh-token",
				ExpiresAt:    time.Now().Add(6 * time.Hour).Unix(),
			})
		case "/api/v3/athlete":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(Athlete{ID: 7})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.TokenExpiresAt = time.Now().Add(-1 * time.Minute)

	athlete, err := client.GetAthlete(context.Background())
	if err != nil {
		t.Fatalf("GetAthlete: %v", err)
	}
	if !refreshed {
		t.Error("expected a token refresh before the athlete fetch")
	}
	if athlete.ID != 7 {
		t.Errorf("athlete id = %v, want 7", athlete.ID)
	}
	if client.AccessToken != "fresh-token" || client.RefreshToken != "fresh-refresh-token" {
		t.Errorf("tokens not rotated: %v / %v", client.AccessToken, client.RefreshToken)
	}
}

func TestTokenRefreshConcurrent(t *testing.T) {
	var refreshCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			refreshCount.Add(1)
			json.NewEncoder(w).Encode(tokenResponse{
				AccessToken:  "fresh-token",
				RefreshToken: "fresh-refresh-token",
				ExpiresAt:    time.Now().Add(6 * time.Hour).Unix(),
			})
		case "/api/v3/athlete":
			auth := r.Header.Get("Authorization")
			if auth != "Bearer fresh-token" {
				t.Errorf("unexpected bearer token: %v", auth)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(Athlete{ID: 7})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.TokenExpiresAt = time.Now().Add(-1 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := client.GetAthlete(context.Background()); err != nil {
					t.Errorf("GetAthlete: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := refreshCount.Load(); got != 1 {
		t.Errorf("refresh count = %v, want 1", got)
	}
}

func TestMissingCredentials(t *testing.T) {
	client := &Client{ApiUrl: "http://localhost"}
	if _, err := client.GetAthlete(context.Background()); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}
