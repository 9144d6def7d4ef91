package ai

import (
	"coach/pkg/export"
	"coach/pkg/search"
	"coach/pkg/strava"
	"coach/pkg/utils"

	"github.com/openai/openai-go"
)

var StatsToolSchema, _ = utils.GenerateSchemaMap[strava.StatsOptions]()
var SearchToolSchema, _ = utils.GenerateSchemaMap[search.WorkoutQuery]()
var ExportToolSchema, _ = utils.GenerateSchemaMap[export.ExportParams]()

func statsBaseTool() BaseTool {
	return BaseTool{
		Name:        StatsToolName,
		Description: "Retrieves and analyzes athlete statistics from Strava for workout planning",
		Parameters:  openai.FunctionParameters(StatsToolSchema),
	}
}

func searchBaseTool() BaseTool {
	return BaseTool{
		Name:        SearchToolName,
		Description: "Searches the internet for workout ideas based on sport type and fitness level",
		Parameters:  openai.FunctionParameters(SearchToolSchema),
	}
}

func exportBaseTool() BaseTool {
	return BaseTool{
		Name:        ExportToolName,
		Description: "Creates an Excel spreadsheet with a weekly training program",
		Parameters:  openai.FunctionParameters(ExportToolSchema),
	}
}

// NewPlannerBelt wires the three planner tools around their clients
func NewPlannerBelt(stravaClient *strava.Client, searchClient *search.Client, exporter *export.Exporter) *Belt {
	return NewBelt(
		Tool{BaseTool: statsBaseTool(), Executable: &StatsTool{Client: stravaClient}},
		Tool{BaseTool: searchBaseTool(), Executable: &SearchTool{Client: searchClient}},
		Tool{BaseTool: exportBaseTool(), Executable: &ExportTool{Exporter: exporter}},
	)
}
