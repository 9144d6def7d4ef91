package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coach/pkg/search"
	"coach/pkg/strava"
)

func TestStatsToolExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/athlete":
			json.NewEncoder(w).Encode(strava.Athlete{ID: 42, Firstname: "Jane"})
		case "/api/v3/athletes/42/stats":
			json.NewEncoder(w).Encode(strava.ActivityStats{
				RecentRunTotals: strava.ActivityTotal{Count: 8, Distance: 80000, MovingTime: 28800},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tool := &StatsTool{Client: &strava.Client{
		ApiUrl:         server.URL,
		ClientId:       "id",
		ClientSecret:   "secret",
		AccessToken:    "token",
		TokenExpiresAt: time.Now().Add(time.Hour),
	}}

	// exclude ytd and all-time groups, recent flags absent stay on
	out, err := tool.Execute(context.Background(), json.RawMessage(`{"include_ytd_totals":false,"include_all_time_totals":false}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var analysis strava.AthleteAnalysis
	if err := json.Unmarshal([]byte(out), &analysis); err != nil {
		t.Fatalf("tool output should be JSON: %v", err)
	}
	if analysis.AthleteInfo.ID != 42 {
		t.Errorf("athlete id = %v", analysis.AthleteInfo.ID)
	}
	if analysis.StatsAnalysis.RecentRunTotals == nil {
		t.Error("recent run totals should be included")
	}
	if analysis.StatsAnalysis.YtdRunTotals != nil {
		t.Error("ytd totals should be excluded")
	}
}

func TestSearchToolExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"title": "Tempo", "content": strings.Repeat("tempo run details ", 5), "url": "https://x/1"},
			},
		})
	}))
	defer server.Close()

	belt := NewBelt(Tool{
		BaseTool:   searchBaseTool(),
		Executable: &SearchTool{Client: &search.Client{ApiUrl: server.URL, ApiKey: "key", MaxResults: 5}},
	})

	out := belt.Execute(context.Background(), SearchToolName, json.RawMessage(`{"sport_type":"Run","fitness_level":"Intermediate"}`))

	var result search.WorkoutSearchResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("tool output should be JSON: %v", err)
	}
	if len(result.WorkoutIdeas) != 1 || result.WorkoutIdeas[0].Title != "Tempo" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestExportToolRejectsEmptyWorkouts(t *testing.T) {
	tool := &ExportTool{}
	if _, err := tool.Execute(context.Background(), json.RawMessage(`{"athlete_name":"Jane","week_start_date":"2026-03-02","workouts":[]}`)); err == nil {
		t.Fatal("expected error for empty workouts")
	}
}
