// Package pipeline runs the document batch: extraction, enrichment,
// checkpointing and failure accounting. Execution is sequential and
// append-only; one document's failure never aborts the batch.
package pipeline

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/anomaly"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/classify"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/extraction"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/summary"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/store"
)

// Document is one source file's extracted text. Producing text from bytes is
// the file layer's job; everything after that is ours.
type Document struct {
	Filename string
	Text     string
}

// Result is the outcome of one batch run.
type Result struct {
	RunID    string
	Reports  []model.Report
	Failures []model.Failure
}

type Pipeline struct {
	Extractor  *extraction.Extractor
	Detector   *anomaly.Detector
	Summarizer *summary.Summarizer // nil disables LLM summaries

	Store              *store.Store // nil disables checkpointing
	CheckpointInterval int
}

func New(detector *anomaly.Detector) *Pipeline {
	return &Pipeline{
		Extractor: extraction.New(),
		Detector:  detector,
	}
}

// Run processes documents in order. When a checkpoint exists the batch
// resumes after the last checkpointed position. Cancelling the context stops
// scheduling further documents; the current document is allowed to finish.
func (p *Pipeline) Run(ctx context.Context, docs []Document) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	start := 0

	if p.Store != nil {
		cp, err := p.Store.LoadCheckpoint()
		if err != nil {
			return nil, err
		}
		if cp != nil {
			log.Printf("resuming from checkpoint: %d documents already processed", cp.ProcessedCount)
			result.RunID = cp.RunID
			result.Reports = cp.Reports
			start = cp.ProcessedCount
		}
	}

	for i := start; i < len(docs); i++ {
		if ctx.Err() != nil {
			break
		}

		p.process(ctx, docs[i], result)

		if p.Store != nil && p.CheckpointInterval > 0 && (i+1)%p.CheckpointInterval == 0 {
			cp := store.Checkpoint{
				RunID:          result.RunID,
				ProcessedCount: i + 1,
				Reports:        result.Reports,
			}
			if err := p.Store.SaveCheckpoint(cp); err != nil {
				log.Printf("failed to save checkpoint: %v", err)
			}
			if err := p.Store.SaveReports(result.Reports); err != nil {
				log.Printf("failed to save intermediate reports: %v", err)
			}
		}
	}

	if p.Store != nil {
		if err := p.Store.SaveReports(result.Reports); err != nil {
			return nil, err
		}
		if err := p.Store.SaveFailures(result.Failures); err != nil {
			return nil, err
		}
		if ctx.Err() == nil {
			if err := p.Store.ClearCheckpoint(); err != nil {
				log.Printf("failed to clear checkpoint: %v", err)
			}
		}
	}

	logOutcome(result, len(docs))
	return result, ctx.Err()
}

// process extracts and enriches one document. Extraction failures exclude the
// record entirely; enrichment failures keep the record without the enrichment.
func (p *Pipeline) process(ctx context.Context, doc Document, result *Result) {
	report := p.Extractor.Parse(doc.Text, doc.Filename)
	if report.Failed() {
		result.Failures = append(result.Failures, model.Failure{
			Filename: report.Filename,
			Error:    truncate(report.Error, 100),
		})
		return
	}

	report.ClassifiedEvents = classify.Events(&report)
	report.DetectedAnomalies = p.Detector.Detect(&report)
	report.ExtractedParams = p.extractParameters(&report)

	if p.Summarizer != nil {
		aiSummary, err := p.Summarizer.Summarize(ctx, &report, report.DetectedAnomalies)
		if err != nil {
			// The record still participates downstream without its summary.
			log.Printf("summary generation failed for %s: %v", report.Filename, err)
			result.Failures = append(result.Failures, model.Failure{
				Filename: report.Filename,
				Error:    truncate(err.Error(), 100),
			})
		} else {
			report.AISummary = aiSummary
		}
	}

	result.Reports = append(result.Reports, report)
}

// extractParameters flattens the key drilling parameters of one report.
func (p *Pipeline) extractParameters(r *model.Report) *model.Parameters {
	params := &model.Parameters{
		Wellbore:     r.Wellbore,
		Period:       r.Period,
		DepthMD:      r.DepthMD,
		DepthTVD:     r.DepthTVD,
		HoleSize:     r.HoleSize,
		Operator:     r.Operator,
		RigName:      r.RigName,
		SurveyPoints: r.SurveyData,
		GasReadings:  r.GasReadings,
		Lithology:    r.Lithology,
		Anomalies:    p.Detector.Detect(r),
	}

	for _, op := range r.Operations {
		params.Activities = append(params.Activities, model.ParameterActivity{
			Time:  op.StartTime + "-" + op.EndTime,
			Type:  classify.Activity(op.Remark),
			Depth: op.Depth,
			State: op.State,
		})
	}
	for _, fluid := range r.DrillingFluid {
		if fluid.Density != nil {
			params.FluidProperties = append(params.FluidProperties, fluid)
		}
	}
	return params
}

func logOutcome(result *Result, total int) {
	log.Printf("batch complete: %d succeeded, %d failed of %d documents",
		len(result.Reports), len(result.Failures), total)
	for _, f := range result.Failures {
		log.Printf("  failed: %s: %s", f.Filename, f.Error)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
