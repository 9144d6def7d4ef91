package types

// a single session inside a weekly training plan
type WorkoutDetail struct {
	Day         string `json:"day" jsonschema_description:"Day of the week (Monday, Tuesday, etc.)"`
	Title       string `json:"title" jsonschema_description:"Title of the workout"`
	Duration    string `json:"duration" jsonschema_description:"Duration of the workout (e.g. '60 min')"`
	Description string `json:"description" jsonschema_description:"Description of the workout"`
	Type        string `json:"type" jsonschema_description:"Type of workout (Run, Bike, Swim, Strength, etc.)"`
	Intensity   string `json:"intensity" jsonschema_description:"Intensity level (Easy, Moderate, Hard)"`
}

// a workout idea found on the internet
type WorkoutIdea struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}
