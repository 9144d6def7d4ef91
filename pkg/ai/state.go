package ai

import (
	"encoding/json"
	"strings"

	"coach/pkg/search"
	"coach/pkg/strava"
	"coach/pkg/types"
)

const exportMarker = "exported successfully to "

type ToolResult struct {
	Name    string
	Content string
}

// PlannerState accumulates what the loop extracts from tool outputs:
// the parsed stats analysis, workout ideas found on the web, and the
// path of the exported spreadsheet.
type PlannerState struct {
	FinalMessage    string
	StravaAnalysis  *strava.AthleteAnalysis
	WorkoutIdeas    []types.WorkoutIdea
	ExcelExportPath string

	ToolResults []ToolResult
}

// processStravaData parses the newest stats tool output into the state
func (s *PlannerState) processStravaData() {
	for i := len(s.ToolResults) - 1; i >= 0; i-- {
		result := s.ToolResults[i]
		if result.Name != StatsToolName {
			continue
		}
		var analysis strava.AthleteAnalysis
		if err := json.Unmarshal([]byte(result.Content), &analysis); err != nil {
			// tool returned an error string, nothing to extract
			return
		}
		s.StravaAnalysis = &analysis
		return
	}
}

// trackWorkoutIdeas collects ideas from every search tool output, newest
// first, deduplicated by source URL
func (s *PlannerState) trackWorkoutIdeas() {
	seen := map[string]bool{}
	for _, idea := range s.WorkoutIdeas {
		seen[idea.Source] = true
	}

	for i := len(s.ToolResults) - 1; i >= 0; i-- {
		result := s.ToolResults[i]
		if result.Name != SearchToolName {
			continue
		}
		var searchResult search.WorkoutSearchResult
		if err := json.Unmarshal([]byte(result.Content), &searchResult); err != nil {
			continue
		}
		for _, idea := range searchResult.WorkoutIdeas {
			if seen[idea.Source] {
				continue
			}
			seen[idea.Source] = true
			s.WorkoutIdeas = append(s.WorkoutIdeas, idea)
		}
	}
}

// trackExcelExport pulls the file path out of the export tool's
// confirmation message
func (s *PlannerState) trackExcelExport() {
	for i := len(s.ToolResults) - 1; i >= 0; i-- {
		result := s.ToolResults[i]
		if result.Name != ExportToolName {
			continue
		}
		if idx := strings.Index(result.Content, exportMarker); idx >= 0 {
			s.ExcelExportPath = strings.TrimSpace(result.Content[idx+len(exportMarker):])
			return
		}
	}
}

// runExtraction applies the fixed post-processing passes in order
func (s *PlannerState) runExtraction() {
	s.processStravaData()
	s.trackWorkoutIdeas()
	s.trackExcelExport()
}
