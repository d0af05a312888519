// Package summary generates the LLM daily summary for a report.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/llm"
)

// DefaultPrompt is used when no template is configured. The single %s slot
// receives the report context block.
const DefaultPrompt = `You are a drilling engineer. Create a concise 3-4 sentence summary of this Daily Drilling Report.
Focus on: key activities, depth progress, any issues/anomalies, and overall status.

%s

Summary:`

const (
	maxContextOperations = 5
	maxContextAnomalies  = 3
)

type Summarizer struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewSummarizer(llmClient llm.LLMClient, prompt string) *Summarizer {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Summarizer{LLM: llmClient, Prompt: prompt}
}

// Summarize builds the report context and asks the model for a daily summary.
func (s *Summarizer) Summarize(ctx context.Context, r *model.Report, anomalies []model.Anomaly) (string, error) {
	prompt := fmt.Sprintf(s.Prompt, buildContext(r, anomalies))

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate daily summary: %w", err)
	}
	return strings.TrimSpace(response), nil
}

func buildContext(r *model.Report, anomalies []model.Anomaly) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Wellbore: %s\n", orNA(r.Wellbore))
	fmt.Fprintf(&b, "Period: %s\n", orNA(r.Period))
	fmt.Fprintf(&b, "Operator: %s\n", orNA(r.Operator))
	fmt.Fprintf(&b, "Rig: %s\n", orNA(r.RigName))
	if r.DepthMD != nil {
		fmt.Fprintf(&b, "Current Depth (MD): %gm\n", *r.DepthMD)
	}
	if r.HoleSize != nil {
		fmt.Fprintf(&b, "Hole Size: %g\"\n", *r.HoleSize)
	}
	if r.Summary.Activities24h != "" {
		fmt.Fprintf(&b, "\nActivities Summary:\n%s\n", r.Summary.Activities24h)
	}

	if len(r.Operations) > 0 {
		b.WriteString("\nOperations:\n")
		for i, op := range r.Operations {
			if i == maxContextOperations {
				break
			}
			depth := "?"
			if op.Depth != nil {
				depth = fmt.Sprintf("%g", *op.Depth)
			}
			fmt.Fprintf(&b, "- %s-%s: %s at %sm - %s\n", op.StartTime, op.EndTime, op.Activity, depth, op.State)
		}
	}

	if len(anomalies) > 0 {
		b.WriteString("\nAnomalies Detected:\n")
		for i, a := range anomalies {
			if i == maxContextAnomalies {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", a.Type, a.Description)
		}
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
