package types

import (
	"strings"
	"time"
)

type PlanStatus string

const (
	PlanStatusProcessing = PlanStatus("processing")
	PlanStatusCompleted  = PlanStatus("completed")
	PlanStatusFailed     = PlanStatus("failed")
)

type TrainingPlanRequest struct {
	AthleteName string `json:"athleteName"`
	Goals       string `json:"goals"`
}

type TrainingPlanResponse struct {
	Message       string `json:"message"`
	ExcelFilePath string `json:"excelFilePath,omitempty"`
}

type TrainingPlanStatus struct {
	Status        PlanStatus `json:"status"`
	Message       string     `json:"message"`
	ExcelFilePath string     `json:"excelFilePath,omitempty"`
}

type PlanRecord struct {
	Status        PlanStatus `json:"status" msgpack:"status"`
	Message       string     `json:"message" msgpack:"message"`
	ExcelFilePath string     `json:"excelFilePath" msgpack:"excelFilePath"`
	Error         string     `json:"error" msgpack:"error"`
	UpdatedAt     time.Time  `json:"updatedAt" msgpack:"updatedAt"`
}

// AthleteKey normalizes an athlete name into a store key ("Jane Doe" -> "Jane_Doe")
func AthleteKey(athleteName string) string {
	return strings.ReplaceAll(strings.TrimSpace(athleteName), " ", "_")
}
