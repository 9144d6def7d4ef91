package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coach/pkg/export"
	"coach/pkg/s3client"
	"coach/pkg/types"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func SetupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "coach",
		UnescapePath: true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Strava Training Planner API is running"})
	})

	app.Post("/training-plan", handleGenerate)
	app.Get("/training-plan/:athlete/status", handleStatus)
	app.Get("/training-plan/:athlete/download", handleDownload)

	return app
}

func ShutdownFiberApp(app *fiber.App) {
	_ = app.Shutdown()
}

// overridable so route tests don't run the real planner
var runPlanFn = runPlanAndStore

func handleGenerate(c *fiber.Ctx) error {
	var req types.TrainingPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid training plan request",
		})
	}

	athleteName := strings.TrimSpace(req.AthleteName)
	if athleteName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "athleteName is required",
		})
	}

	Store.SetProcessing(athleteName)
	go runPlanFn(athleteName, req.Goals)

	return c.JSON(types.TrainingPlanResponse{
		Message: "Training plan generation started. Please check the status endpoint for updates.",
	})
}

func handleStatus(c *fiber.Ctx) error {
	athleteName := c.Params("athlete")

	record, ok := Store.Get(athleteName)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "not_found",
			"message": fmt.Sprintf("No training plan found for athlete: %s", athleteName),
		})
	}

	switch record.Status {
	case types.PlanStatusCompleted:
		message := record.Message
		if message == "" {
			message = "Training plan generated successfully"
		}
		return c.JSON(types.TrainingPlanStatus{
			Status:        types.PlanStatusCompleted,
			Message:       message,
			ExcelFilePath: record.ExcelFilePath,
		})
	case types.PlanStatusFailed:
		message := record.Error
		if message == "" {
			message = "Unknown error occurred"
		}
		return c.JSON(types.TrainingPlanStatus{
			Status:  types.PlanStatusFailed,
			Message: message,
		})
	default:
		return c.JSON(types.TrainingPlanStatus{
			Status:  types.PlanStatusProcessing,
			Message: "Training plan is still being generated",
		})
	}
}

func handleDownload(c *fiber.Ctx) error {
	athleteName := c.Params("athlete")

	record, ok := Store.Get(athleteName)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("No training plan found for athlete: %s", athleteName),
		})
	}
	if record.Status != types.PlanStatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Training plan for %s is not ready yet", athleteName),
		})
	}

	excelPath := record.ExcelFilePath
	if excelPath == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Excel file not found"})
	}
	fileName := filepath.Base(excelPath)
	if _, err := os.Stat(excelPath); err != nil {
		// local copy gone (e.g. after a restart); fall back to the S3 archive
		if S3Client != nil && S3Bucket != "" {
			body, s3err := s3client.GetObject(S3Client, S3Bucket, export.ArchiveKey(fileName))
			if s3err == nil {
				c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
				return c.Send(body)
			}
			log.Warnf("fail to fetch archived plan from s3: %v", s3err)
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Excel file not found"})
	}

	return c.Download(excelPath, fileName)
}

// runPlanAndStore runs the planner in the background and records the outcome
func runPlanAndStore(athleteName string, goals string) {
	logger := log.WithFields(log.Fields{"athlete": athleteName})

	state, err := Planner.Run(context.Background(), athleteName, goals)
	if err != nil {
		logger.Errorf("fail to generate training plan: %v", err)
		Store.SetFailed(athleteName, err.Error())
		return
	}

	Store.SetCompleted(athleteName, state.FinalMessage, state.ExcelExportPath)
	logger.Infof("training plan completed (export: %v)", state.ExcelExportPath)
}
