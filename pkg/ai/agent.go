package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"coach/config"
	"coach/pkg/utils"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	log "github.com/sirupsen/logrus"
)

// PlannerAgent runs the tool-call loop that turns one athlete request
// into a weekly training plan and an exported spreadsheet.
type PlannerAgent struct {
	Client      *openai.Client
	Model       string
	Temperature float64
	PlanDays    int
	MaxTurns    int
	Belt        *Belt

	logger *log.Entry
}

func NewPlannerAgent(cfg *config.PlannerConfig, belt *Belt) (*PlannerAgent, error) {
	agent := &PlannerAgent{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		PlanDays:    cfg.PlanDays,
		MaxTurns:    cfg.MaxTurns,
		Belt:        belt,
		logger: log.WithFields(log.Fields{
			"component": "planner",
		}),
	}
	if err := agent.InitOpenAIClient(); err != nil {
		return nil, err
	}
	return agent, nil
}

func (a *PlannerAgent) InitOpenAIClient() error {
	openaiApiKey := os.Getenv("OPENAI_API_KEY")
	if openaiApiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(openaiApiKey)}
	if openaiBaseUrl := utils.LoadEnvWithDefault("OPENAI_BASE_URL", ""); openaiBaseUrl != "" {
		opts = append(opts, option.WithBaseURL(openaiBaseUrl))
	}

	a.Client = openai.NewClient(opts...)
	return nil
}

// Run drives the conversation until the model answers without tool calls:
// completion -> execute tool calls -> extraction passes -> repeat.
func (a *PlannerAgent) Run(ctx context.Context, athleteName string, goals string) (*PlannerState, error) {
	logger := a.logger.WithFields(log.Fields{"athlete": athleteName})
	state := &PlannerState{}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(SystemPrompt),
		openai.UserMessage(BuildUserPrompt(athleteName, a.PlanDays, goals)),
	}

	for turn := 0; turn < a.MaxTurns; turn++ {
		chatCompletion, err := a.Client.Chat.Completions.New(
			ctx,
			openai.ChatCompletionNewParams{
				Messages:    openai.F(messages),
				Tools:       openai.F(a.Belt.ChatTools()),
				Model:       openai.F(a.Model),
				Temperature: openai.F(a.Temperature),
			},
		)
		if err != nil {
			return nil, err
		}
		if len(chatCompletion.Choices) == 0 {
			return nil, fmt.Errorf("no completion found")
		}

		message := chatCompletion.Choices[0].Message
		messages = append(messages, message)

		if len(message.ToolCalls) == 0 {
			state.FinalMessage = message.Content
			if state.FinalMessage == "" {
				state.FinalMessage = "No response from agent"
			}
			logger.Infof("planning finished after %v turn(s)", turn+1)
			return state, nil
		}

		for _, toolCall := range message.ToolCalls {
			logger.Infof("executing tool: %v", toolCall.Function.Name)
			out := a.Belt.Execute(ctx, toolCall.Function.Name, json.RawMessage(toolCall.Function.Arguments))
			state.ToolResults = append(state.ToolResults, ToolResult{
				Name:    toolCall.Function.Name,
				Content: out,
			})
			messages = append(messages, openai.ToolMessage(toolCall.ID, out))
		}

		state.runExtraction()
	}

	return nil, fmt.Errorf("planner did not finish within %v turns", a.MaxTurns)
}
