package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"coach/config"
	"coach/pkg/http"
	"coach/pkg/types"
	"coach/pkg/utils"
)

const maxSummaryLen = 1000

// WorkoutQuery describes what kind of workout content to look for.
// Parameters mirror the planner tool schema.
type WorkoutQuery struct {
	SportType       string `json:"sport_type" jsonschema_description:"Type of sport (Run, Bike, Swim, etc.)"`
	FitnessLevel    string `json:"fitness_level" jsonschema_description:"Athlete's fitness level (Beginner, Intermediate, Advanced, Elite)"`
	DurationMinutes int    `json:"duration_minutes,omitempty" jsonschema_description:"Target duration in minutes"`
	Goal            string `json:"goal,omitempty" jsonschema_description:"Training goal (e.g. 'speed', 'endurance', 'recovery')"`
	MaxResults      int    `json:"max_results,omitempty" jsonschema_description:"Maximum number of workout ideas to return"`
}

type WorkoutSearchResult struct {
	Query        string              `json:"query"`
	WorkoutIdeas []types.WorkoutIdea `json:"workout_ideas"`
}

type tavilyRequest struct {
	ApiKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Url     string `json:"url"`
	} `json:"results"`
}

type Client struct {
	ApiUrl     string
	ApiKey     string
	MaxResults int
}

func New(cfg *config.SearchConfig) (*Client, error) {
	return &Client{
		ApiUrl:     cfg.ApiUrl,
		ApiKey:     utils.LoadEnv("TAVILY_API_KEY"),
		MaxResults: cfg.MaxResults,
	}, nil
}

// BuildQuery assembles the web search query from the workout parameters
func BuildQuery(q WorkoutQuery) string {
	parts := []string{fmt.Sprintf("%s %s workout", q.FitnessLevel, q.SportType)}
	if q.DurationMinutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minute", q.DurationMinutes))
	}
	if q.Goal != "" {
		parts = append(parts, q.Goal)
	}
	return strings.Join(parts, " ")
}

// SearchWorkouts queries the search API and distills results into workout ideas
func (c *Client) SearchWorkouts(ctx context.Context, q WorkoutQuery) (*WorkoutSearchResult, error) {
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = c.MaxResults
	}

	query := BuildQuery(q)
	reqBody, err := json.Marshal(tavilyRequest{
		ApiKey:      c.ApiKey,
		Query:       query,
		SearchDepth: "advanced",
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, err
	}

	statusCode, resBody, err := http.PostRequest(ctx, c.ApiUrl+"/search", "", reqBody)
	if err != nil {
		return nil, fmt.Errorf("fail to search workout ideas: %w", err)
	}
	if statusCode != 200 {
		return nil, fmt.Errorf("fail to search workout ideas: status %v: %s", statusCode, resBody)
	}

	var searchRes tavilyResponse
	if err := json.Unmarshal(resBody, &searchRes); err != nil {
		return nil, fmt.Errorf("fail to parse search response: %w", err)
	}

	workoutIdeas := []types.WorkoutIdea{}
	for _, result := range searchRes.Results {
		content := strings.TrimSpace(result.Content)
		// skip thin results
		if len(content) < 50 {
			continue
		}
		summary := content
		// truncate by characters so multi-byte runes stay intact
		if runes := []rune(summary); len(runes) > maxSummaryLen {
			summary = string(runes[:maxSummaryLen]) + "..."
		}
		title := result.Title
		if title == "" {
			title = "Untitled Workout"
		}
		workoutIdeas = append(workoutIdeas, types.WorkoutIdea{
			Title:   title,
			Summary: summary,
			Source:  result.Url,
		})
		if len(workoutIdeas) == maxResults {
			break
		}
	}

	return &WorkoutSearchResult{
		Query:        query,
		WorkoutIdeas: workoutIdeas,
	}, nil
}
