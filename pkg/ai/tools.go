package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"coach/pkg/export"
	"coach/pkg/search"
	"coach/pkg/strava"

	"github.com/openai/openai-go"
)

const (
	StatsToolName  = "strava_athlete_stats_analysis"
	SearchToolName = "search_workout_ideas"
	ExportToolName = "export_training_plan_to_excel"
)

type BaseTool struct {
	Name        string
	Description string
	Parameters  openai.FunctionParameters
}

type Executable interface {
	Execute(ctx context.Context, args json.RawMessage) (string, error)
}

type Tool struct {
	BaseTool
	Executable Executable
}

// Belt is the fixed set of tools exposed to the planner model
type Belt struct {
	tools []Tool
}

func NewBelt(tools ...Tool) *Belt {
	return &Belt{tools: tools}
}

func (b *Belt) ChatTools() []openai.ChatCompletionToolParam {
	chatTools := make([]openai.ChatCompletionToolParam, 0, len(b.tools))
	for _, tool := range b.tools {
		chatTools = append(chatTools, openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.F(tool.Name),
				Description: openai.F(tool.Description),
				Parameters:  openai.F(tool.Parameters),
			}),
		})
	}
	return chatTools
}

// Execute runs one tool by name. Failures come back as text so the model
// can see what went wrong and retry, matching the tools' catch-into-string
// behavior throughout.
func (b *Belt) Execute(ctx context.Context, name string, args json.RawMessage) string {
	for _, tool := range b.tools {
		if tool.Name != name {
			continue
		}
		out, err := tool.Executable.Execute(ctx, args)
		if err != nil {
			return fmt.Sprintf("Error executing %s: %v", name, err)
		}
		return out
	}
	return fmt.Sprintf("Unknown tool: %s", name)
}

// MARK: StatsTool

type StatsTool struct {
	Client *strava.Client
}

func (t *StatsTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	opts := strava.DefaultStatsOptions()
	if len(args) > 0 {
		if err := json.Unmarshal(args, &opts); err != nil {
			return "", fmt.Errorf("invalid stats params: %w", err)
		}
	}

	athlete, err := t.Client.GetAthlete(ctx)
	if err != nil {
		return "", err
	}
	stats, err := t.Client.GetAthleteStats(ctx, athlete.ID)
	if err != nil {
		return "", err
	}

	analysis := strava.AthleteAnalysis{
		AthleteInfo:   athlete,
		StatsAnalysis: strava.AnalyzeStats(stats, opts),
	}
	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MARK: SearchTool

type SearchTool struct {
	Client *search.Client
}

func (t *SearchTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var query search.WorkoutQuery
	if err := json.Unmarshal(args, &query); err != nil {
		return "", fmt.Errorf("invalid search params: %w", err)
	}

	result, err := t.Client.SearchWorkouts(ctx, query)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MARK: ExportTool

type ExportTool struct {
	Exporter *export.Exporter
}

func (t *ExportTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params export.ExportParams
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid export params: %w", err)
	}
	if len(params.Workouts) == 0 {
		return "", fmt.Errorf("workouts must not be empty")
	}

	path, err := t.Exporter.Export(params)
	if err != nil {
		return "", err
	}
	// downstream passes key on this exact marker
	return fmt.Sprintf("Training plan exported successfully to %s", path), nil
}
