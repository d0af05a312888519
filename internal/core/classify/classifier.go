// Package classify labels operation remarks with an activity category and
// computes operation durations.
package classify

import (
	"strconv"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

// ActivityOther is returned when no keyword matches.
const ActivityOther = "other"

type category struct {
	name     string
	keywords []string
}

// Categories are scored in this order; the first defined wins a tie.
var categories = []category{
	{"drilling", []string{"drill", "drilled", "drilling", "hole"}},
	{"tripping", []string{"trip", "tripping", "pooh", "rih", "pull", "run"}},
	{"circulating", []string{"circulate", "circulation", "circulating", "pump"}},
	{"casing", []string{"casing", "cement", "cementing"}},
	{"testing", []string{"test", "testing", "function test", "bop"}},
	{"reaming", []string{"ream", "reamed", "reaming", "wash"}},
	{"stuck_pipe", []string{"stuck", "stuck pipe", "fish", "fishing", "jar"}},
	{"lost_circulation", []string{"lost circulation", "losses", "losing"}},
	{"survey", []string{"survey", "surveying", "mwd"}},
}

// Activity returns the category whose keywords score highest in text.
// Each matching keyword counts once; ties break toward the earlier category.
func Activity(text string) string {
	lower := strings.ToLower(text)

	best := ActivityOther
	bestScore := 0
	for _, c := range categories {
		score := 0
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = c.name
			bestScore = score
		}
	}
	return best
}

// Duration computes hours between two HH:MM clock readings. An end before the
// start is treated as wrapping past midnight. Any parse failure yields 0.
func Duration(start, end string) float64 {
	startMin, ok := clockMinutes(start)
	if !ok {
		return 0.0
	}
	endMin, ok := clockMinutes(end)
	if !ok {
		return 0.0
	}
	if endMin < startMin {
		endMin += 24 * 60
	}
	return float64(endMin-startMin) / 60.0
}

func clockMinutes(s string) (int, bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}

// Events classifies every operation of a report.
func Events(r *model.Report) []model.Event {
	events := make([]model.Event, 0, len(r.Operations))
	for _, op := range r.Operations {
		events = append(events, model.Event{
			StartTime:    op.StartTime,
			EndTime:      op.EndTime,
			Depth:        op.Depth,
			ActivityType: Activity(op.Remark),
			State:        op.State,
			Description:  op.Remark,
			Duration:     Duration(op.StartTime, op.EndTime),
		})
	}
	return events
}
