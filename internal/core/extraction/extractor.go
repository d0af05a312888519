// Package extraction parses raw daily drilling report text into structured
// records. Extraction is best-effort throughout: a field that cannot be
// recovered is left null and the record still flows downstream. Only a
// document with no usable text at all becomes an error record.
package extraction

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/classify"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/common"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

// Wellbore label patterns, tried in order. The duplicated "Wellbore:Wellbore:"
// form is an artifact of the source documents' field rendering.
var wellborePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Wellbore:\s*Wellbore:\s*([^\s\n]+(?:\s+[A-Z0-9])?)`),
	regexp.MustCompile(`(?i)Wellbore:\s*([^\s\n]+(?:\s+[A-Z0-9])?)`),
	regexp.MustCompile(`(?i)Well\s*bore:\s*([^\s\n]+(?:\s+[A-Z0-9])?)`),
}

var (
	bareWellboreRe = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}-[A-Z0-9-]+(?:\s+[A-Z0-9])?)\b`)

	// Filename conventions: 15_9_19_A_<date>.pdf and 15_9_F_10_<date>.pdf.
	fileWellRe       = regexp.MustCompile(`(\d{1,2})_(\d{1,2})_(\d+)_([A-Z0-9]+)`)
	fileLetterWellRe = regexp.MustCompile(`(\d{1,2})_(\d{1,2})_([A-Z])_(\d+)`)
	digitsRe         = regexp.MustCompile(`^\d+$`)
)

var periodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Period:\s*Period:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Period:\s*([^\n]+)`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}\s*-\s*\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2})`),
}

var (
	periodJunkRe   = regexp.MustCompile(`(?i)(Status|Report|Normal).*$`)
	operatorRe     = regexp.MustCompile(`(?i)Operator:[ \t]*([A-Za-z ]+)`)
	operatorJunkRe = regexp.MustCompile(`(?i)\s*(Formation|Rig|Drilling|Contractor).*$`)
	rigNameRe      = regexp.MustCompile(`(?i)Rig\s*Name:\s*([^\n]+)`)
	depthMDRe      = regexp.MustCompile(`(?i)Depth\s*mMD:\s*([0-9]+\.?[0-9]*)`)
	depthTVDRe     = regexp.MustCompile(`(?i)Depth\s*mTVD:\s*([0-9]+\.?[0-9]*)`)
	holeSizeRe     = regexp.MustCompile(`(?i)Hole\s*Dia\s*\(in\):\s*([0-9.]+)`)

	activitiesLabelRe = regexp.MustCompile(`(?i)Summar\s*y\s*of\s*activities\s*\(24\s*Hours\)\s*\n`)
	plannedLabelRe    = regexp.MustCompile(`(?i)Summar\s*y\s*of\s*planned\s*activities\s*\(24\s*Hours\)\s*\n`)
	summaryStopRe     = regexp.MustCompile(`(?i)^(Summar|Operations)`)
)

// Extractor turns one document's text into a Report. It is stateless and safe
// to reuse across documents.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Parse produces a Report from raw document text. It never panics past its
// boundary; every recognized failure mode becomes the record's Error field.
func (e *Extractor) Parse(text, filename string) (report model.Report) {
	defer func() {
		if r := recover(); r != nil {
			report = model.Report{Filename: filename, Error: fmt.Sprintf("extraction panic: %v", r)}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return model.Report{Filename: filename, Error: "document has no text layer"}
	}

	report = model.Report{
		Filename:      filename,
		Wellbore:      extractWellbore(text, filename),
		Period:        extractPeriod(text),
		Operator:      extractOperator(text),
		RigName:       extractLine(text, rigNameRe),
		Summary:       extractSummary(text),
		DepthMD:       extractFloat(text, depthMDRe),
		DepthTVD:      extractFloat(text, depthTVDRe),
		HoleSize:      extractFloat(text, holeSizeRe),
		Operations:    extractOperations(text),
		DrillingFluid: extractDrillingFluid(text),
		SurveyData:    extractSurvey(text),
		Lithology:     extractLithology(text),
		GasReadings:   extractGasReadings(text),
	}
	return report
}

// extractWellbore walks the identity fallback chain: duplicated label, single
// label, loose label, bare well-name pattern, filename conventions, and
// finally a truncated filename. The last step is degraded but never empty.
func extractWellbore(text, filename string) string {
	for _, re := range wellborePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			wellbore := strings.TrimSpace(m[1])
			if len(wellbore) > 2 {
				return wellbore
			}
		}
	}

	if m := bareWellboreRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	base := strings.TrimSuffix(filename, ".pdf")
	if m := fileWellRe.FindStringSubmatch(base); m != nil {
		block, field, well, suffix := m[1], m[2], m[3], m[4]
		// A pure digit run where a letter suffix is expected is a date
		// leaking in from the filename; treat it as no suffix.
		if !digitsRe.MatchString(suffix) {
			return fmt.Sprintf("%s/%s-%s %s", block, field, well, suffix)
		}
		return fmt.Sprintf("%s/%s-%s", block, field, well)
	}
	if m := fileLetterWellRe.FindStringSubmatch(base); m != nil {
		return fmt.Sprintf("%s/%s-%s-%s", m[1], m[2], m[3], m[4])
	}

	log.Printf("could not extract wellbore from %s, falling back to filename", filename)
	if len(base) > 30 {
		base = base[:30]
	}
	return base
}

func extractPeriod(text string) string {
	for _, re := range periodPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		// Adjacent fields can leak into the captured line.
		period := strings.TrimSpace(periodJunkRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		if len(period) > 10 {
			return period
		}
	}
	return ""
}

func extractOperator(text string) string {
	m := operatorRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	operator := strings.TrimSpace(operatorJunkRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
	if len(operator) > 2 {
		return operator
	}
	return ""
}

func extractLine(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	value, _, _ := strings.Cut(m[1], "\n")
	return strings.TrimSpace(value)
}

func extractFloat(text string, re *regexp.Regexp) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return common.FirstBareNumber(m[1])
}

func extractSummary(text string) model.ActivitySummary {
	return model.ActivitySummary{
		Activities24h: captureBlock(text, activitiesLabelRe),
		Planned24h:    captureBlock(text, plannedLabelRe),
	}
}

// captureBlock collects the lines following a summary label until the next
// summary heading or the operations section begins.
func captureBlock(text string, label *regexp.Regexp) string {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	var block []string
	for _, line := range strings.Split(text[loc[1]:], "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || summaryStopRe.MatchString(trimmed) {
			break
		}
		block = append(block, trimmed)
	}
	return strings.Join(block, "\n")
}

func extractOperations(text string) []model.Operation {
	body, ok := FindSection(text, SectionOperations)
	if !ok {
		return nil
	}

	var ops []model.Operation
	for _, line := range nonEmptyLines(body) {
		// Column header rows repeat the Start label.
		if strings.Contains(line, "Start") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		op := model.Operation{
			Depth:    common.FirstBareNumber(line),
			Activity: classify.Activity(line),
			State:    extractState(line),
			Remark:   line,
		}
		// A token that is not clock-like leaves the field empty rather
		// than dropping the row.
		if strings.Contains(fields[0], ":") {
			op.StartTime = fields[0]
		}
		if strings.Contains(fields[1], ":") {
			op.EndTime = fields[1]
		}
		ops = append(ops, op)
	}
	return ops
}

func extractState(line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "fail"):
		return model.StateFail
	case strings.Contains(lower, "ok"):
		return model.StateOK
	default:
		return model.StateUnknown
	}
}

func nonEmptyLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
