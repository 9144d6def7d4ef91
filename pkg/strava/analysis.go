package strava

import "math"

// StatsOptions selects which stat groups go into the analysis.
// Parameters mirror the planner tool schema, all on by default.
type StatsOptions struct {
	IncludeRecentRideTotals bool `json:"include_recent_ride_totals" jsonschema_description:"Include recent ride stats"`
	IncludeRecentRunTotals  bool `json:"include_recent_run_totals" jsonschema_description:"Include recent run stats"`
	IncludeRecentSwimTotals bool `json:"include_recent_swim_totals" jsonschema_description:"Include recent swim stats"`
	IncludeYtdTotals        bool `json:"include_ytd_totals" jsonschema_description:"Include year to date stats"`
	IncludeAllTimeTotals    bool `json:"include_all_time_totals" jsonschema_description:"Include all time stats"`
}

func DefaultStatsOptions() StatsOptions {
	return StatsOptions{
		IncludeRecentRideTotals: true,
		IncludeRecentRunTotals:  true,
		IncludeRecentSwimTotals: true,
		IncludeYtdTotals:        true,
		IncludeAllTimeTotals:    true,
	}
}

type TotalsSummary struct {
	Count           int     `json:"count"`
	DistanceKm      float64 `json:"distance_km"`
	MovingTimeHours float64 `json:"moving_time_hours"`
	ElevationGainM  float64 `json:"elevation_gain_m,omitempty"`
}

type WeeklyAverage struct {
	AvgSessionsPerWeek   float64 `json:"avg_sessions_per_week"`
	AvgDistanceKmPerWeek float64 `json:"avg_distance_km_per_week"`
	AvgTimeHoursPerWeek  float64 `json:"avg_time_hours_per_week"`
}

type TrainingInsights struct {
	PrimarySport            string  `json:"primary_sport"`
	WeeklyTrainingLoadHours float64 `json:"weekly_training_load_hours"`
	FitnessLevel            string  `json:"fitness_level"`
	AvgWeeklySessions       float64 `json:"avg_weekly_sessions"`
	TrainingFrequency       string  `json:"training_frequency"`
}

type StatsAnalysis struct {
	RecentRideTotals *TotalsSummary `json:"recent_ride_totals,omitempty"`
	RecentRunTotals  *TotalsSummary `json:"recent_run_totals,omitempty"`
	RecentSwimTotals *TotalsSummary `json:"recent_swim_totals,omitempty"`
	YtdRideTotals    *TotalsSummary `json:"ytd_ride_totals,omitempty"`
	YtdRunTotals     *TotalsSummary `json:"ytd_run_totals,omitempty"`
	YtdSwimTotals    *TotalsSummary `json:"ytd_swim_totals,omitempty"`
	AllRideTotals    *TotalsSummary `json:"all_ride_totals,omitempty"`
	AllRunTotals     *TotalsSummary `json:"all_run_totals,omitempty"`
	AllSwimTotals    *TotalsSummary `json:"all_swim_totals,omitempty"`

	WeeklyAverages   map[string]WeeklyAverage `json:"weekly_averages"`
	TrainingInsights TrainingInsights         `json:"training_insights"`
}

// the tool output combining profile and analysis
type AthleteAnalysis struct {
	AthleteInfo   *Athlete       `json:"athlete_info"`
	StatsAnalysis *StatsAnalysis `json:"stats_analysis"`
}

// AnalyzeStats processes raw activity totals into the planning summary:
// per-group totals, weekly averages over the recent 4 weeks, and
// fitness/frequency insights derived from them.
func AnalyzeStats(stats *ActivityStats, opts StatsOptions) *StatsAnalysis {
	analysis := &StatsAnalysis{
		WeeklyAverages: map[string]WeeklyAverage{},
	}

	if opts.IncludeRecentRideTotals {
		analysis.RecentRideTotals = summarize(stats.RecentRideTotals, true)
	}
	if opts.IncludeRecentRunTotals {
		analysis.RecentRunTotals = summarize(stats.RecentRunTotals, true)
	}
	if opts.IncludeRecentSwimTotals {
		analysis.RecentSwimTotals = summarize(stats.RecentSwimTotals, false)
	}
	if opts.IncludeYtdTotals {
		analysis.YtdRideTotals = summarize(stats.YtdRideTotals, true)
		analysis.YtdRunTotals = summarize(stats.YtdRunTotals, true)
		analysis.YtdSwimTotals = summarize(stats.YtdSwimTotals, false)
	}
	if opts.IncludeAllTimeTotals {
		analysis.AllRideTotals = summarize(stats.AllRideTotals, true)
		analysis.AllRunTotals = summarize(stats.AllRunTotals, true)
		analysis.AllSwimTotals = summarize(stats.AllSwimTotals, false)
	}

	// weekly averages over the recent 4 weeks
	if analysis.RecentRideTotals != nil {
		analysis.WeeklyAverages["ride"] = weeklyAverage(analysis.RecentRideTotals)
	}
	if analysis.RecentRunTotals != nil {
		analysis.WeeklyAverages["run"] = weeklyAverage(analysis.RecentRunTotals)
	}
	if analysis.RecentSwimTotals != nil {
		analysis.WeeklyAverages["swim"] = weeklyAverage(analysis.RecentSwimTotals)
	}

	analysis.TrainingInsights = calculateTrainingInsights(analysis)
	return analysis
}

func summarize(totals ActivityTotal, withElevation bool) *TotalsSummary {
	summary := &TotalsSummary{
		Count:           totals.Count,
		DistanceKm:      round2(totals.Distance / 1000),
		MovingTimeHours: round2(float64(totals.MovingTime) / 3600),
	}
	if withElevation {
		summary.ElevationGainM = round2(totals.ElevationGain)
	}
	return summary
}

func weeklyAverage(recent *TotalsSummary) WeeklyAverage {
	return WeeklyAverage{
		AvgSessionsPerWeek:   round1(float64(recent.Count) / 4),
		AvgDistanceKmPerWeek: round1(recent.DistanceKm / 4),
		AvgTimeHoursPerWeek:  round1(recent.MovingTimeHours / 4),
	}
}

func calculateTrainingInsights(analysis *StatsAnalysis) TrainingInsights {
	insights := TrainingInsights{PrimarySport: "Unknown"}

	// primary sport by recent session count
	maxCount := 0
	recents := map[string]*TotalsSummary{
		"Ride": analysis.RecentRideTotals,
		"Run":  analysis.RecentRunTotals,
		"Swim": analysis.RecentSwimTotals,
	}
	for _, sport := range []string{"Ride", "Run", "Swim"} {
		if recents[sport] != nil && recents[sport].Count > maxCount {
			maxCount = recents[sport].Count
			insights.PrimarySport = sport
		}
	}

	// weekly training load in hours
	weeklyHours := 0.0
	weeklySessions := 0.0
	for _, avg := range analysis.WeeklyAverages {
		weeklyHours += avg.AvgTimeHoursPerWeek
		weeklySessions += avg.AvgSessionsPerWeek
	}
	insights.WeeklyTrainingLoadHours = round1(weeklyHours)
	insights.AvgWeeklySessions = round1(weeklySessions)

	switch {
	case weeklyHours < 3:
		insights.FitnessLevel = "Beginner"
	case weeklyHours < 7:
		insights.FitnessLevel = "Intermediate"
	case weeklyHours < 12:
		insights.FitnessLevel = "Advanced"
	default:
		insights.FitnessLevel = "Elite"
	}

	switch {
	case weeklySessions < 3:
		insights.TrainingFrequency = "Low"
	case weeklySessions < 6:
		insights.TrainingFrequency = "Moderate"
	default:
		insights.TrainingFrequency = "High"
	}

	return insights
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
