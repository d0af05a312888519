package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

const sampleReport = `Daily Drilling Report
Wellbore:Wellbore: 15/9-19 B
Period: Period: 2024-03-15 00:00 - 2024-03-16 00:00 Status Normal
Operator: Equinor Energy Formation Sandstone
Rig Name: Deepsea Atlantic
Depth mMD: 2800.0
Depth mTVD: 2650.5
Hole Dia (in): 8.5
Summar y of activities (24 Hours)
Drilled 8 1/2" hole from 2700 m to 2800 m.
Lost circulation observed at 2750 m.
Summar y of planned activities (24 Hours)
Continue ahead to section TD.
Operations
Start End Depth Remark State
08:00 10:30 2800 Drilled ahead 8 1/2" hole ok
10:30 12:00 2800 Worked stuck pipe, jarred free fail
12:00 16:00 2805 Circulated bottoms up and pumped pill ok
Drilling Fluid
Fluid Density (g/cm3)
1.45
Funnel Visc (s)
52
Fluid Type
OBM
Sur vey Station
Depth MD Depth TVD Incl Azim
2750.0 2600.0 45.2 180.5
Lithology Infor mation
Start Depth End Depth Description
2700.0 2800.0 SANDSTONE: light grey, fine grained
Gas Reading Infor mation
Time Depth Gas C1 C2 Class
2795.0 1.8 9000 450 12 5 peak
`

func TestParseFullDocument(t *testing.T) {
	r := New().Parse(sampleReport, "15_9_19_B_2024-03-15.pdf")
	require.False(t, r.Failed(), "unexpected extraction error: %s", r.Error)

	assert.Equal(t, "15/9-19 B", r.Wellbore)
	assert.Equal(t, "2024-03-15 00:00 - 2024-03-16 00:00", r.Period)
	assert.Equal(t, "Equinor Energy", r.Operator)
	assert.Equal(t, "Deepsea Atlantic", r.RigName)

	require.NotNil(t, r.DepthMD)
	assert.Equal(t, 2800.0, *r.DepthMD)
	require.NotNil(t, r.DepthTVD)
	assert.Equal(t, 2650.5, *r.DepthTVD)
	require.NotNil(t, r.HoleSize)
	assert.Equal(t, 8.5, *r.HoleSize)

	assert.Contains(t, r.Summary.Activities24h, "Drilled 8 1/2\" hole")
	assert.Contains(t, r.Summary.Activities24h, "Lost circulation observed")
	assert.Equal(t, "Continue ahead to section TD.", r.Summary.Planned24h)

	require.Len(t, r.Operations, 3)
	op := r.Operations[0]
	assert.Equal(t, "08:00", op.StartTime)
	assert.Equal(t, "10:30", op.EndTime)
	require.NotNil(t, op.Depth)
	assert.Equal(t, 2800.0, *op.Depth)
	assert.Equal(t, "drilling", op.Activity)
	assert.Equal(t, model.StateOK, op.State)

	assert.Equal(t, "stuck_pipe", r.Operations[1].Activity)
	assert.Equal(t, model.StateFail, r.Operations[1].State)
	assert.Equal(t, "circulating", r.Operations[2].Activity)

	require.Len(t, r.DrillingFluid, 1)
	require.NotNil(t, r.DrillingFluid[0].Density)
	assert.Equal(t, 1.45, *r.DrillingFluid[0].Density)
	require.NotNil(t, r.DrillingFluid[0].Viscosity)
	assert.Equal(t, 52.0, *r.DrillingFluid[0].Viscosity)
	assert.Equal(t, "OBM", r.DrillingFluid[0].Type)

	require.Len(t, r.SurveyData, 1)
	assert.Equal(t, model.SurveyStation{DepthMD: 2750.0, DepthTVD: 2600.0, Inclination: 45.2, Azimuth: 180.5}, r.SurveyData[0])

	require.Len(t, r.Lithology, 1)
	assert.Equal(t, 2700.0, r.Lithology[0].StartDepth)
	assert.Equal(t, 2800.0, r.Lithology[0].EndDepth)
	assert.Equal(t, "SANDSTONE: light grey, fine grained", r.Lithology[0].Description)

	require.Len(t, r.GasReadings, 1)
	gas := r.GasReadings[0]
	require.NotNil(t, gas.Depth)
	assert.Equal(t, 2795.0, *gas.Depth)
	require.NotNil(t, gas.GasPercentage)
	assert.Equal(t, 1.8, *gas.GasPercentage)
	require.NotNil(t, gas.C1PPM)
	assert.Equal(t, 9000.0, *gas.C1PPM)
	require.NotNil(t, gas.C2PPM)
	assert.Equal(t, 450.0, *gas.C2PPM)
	assert.Equal(t, model.GasClassPeak, gas.Class)
}

func TestParseEmptyText(t *testing.T) {
	r := New().Parse("   \n  ", "empty.pdf")
	assert.True(t, r.Failed())
	assert.Equal(t, "document has no text layer", r.Error)
	assert.Equal(t, "empty.pdf", r.Filename)
}

func TestOperationDepthSkipsClockTokens(t *testing.T) {
	text := "Operations\n08:00 10:30 2800 Drilled ahead as planned ok\n"
	ops := extractOperations(text)
	require.Len(t, ops, 1)
	require.NotNil(t, ops[0].Depth)
	// The depth column follows two clock tokens; 08:00 must not be read as 8.
	assert.Equal(t, 2800.0, *ops[0].Depth)
}

func TestExtractWellboreFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		want     string
	}{
		{"single label", "Wellbore: 15/9-19 A\n", "x.pdf", "15/9-19 A"},
		{"split label", "Well bore: 15/9-F-10\n", "x.pdf", "15/9-F-10"},
		{"bare pattern in text", "status for well 15/9-19 B today", "x.pdf", "15/9-19 B"},
		{"filename with letter suffix", "no identity here", "15_9_19_A_2024-03-15.pdf", "15/9-19 A"},
		{"filename with trailing date", "no identity here", "15_9_19_20240315.pdf", "15/9-19"},
		{"filename letter well", "no identity here", "15_9_F_10_20240315.pdf", "15/9-F-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractWellbore(tt.text, tt.filename))
		})
	}
}

func TestExtractWellboreFilenameTruncation(t *testing.T) {
	got := extractWellbore("nothing useful", "a_very_long_document_name_with_no_well_identity.pdf")
	assert.Equal(t, 30, len(got))
	assert.True(t, strings.HasPrefix("a_very_long_document_name_with_no_well_identity", got))
}

func TestExtractPeriodRejectsShortCaptures(t *testing.T) {
	// After junk-stripping only "Status..." remains; too short to be a period.
	assert.Equal(t, "", extractPeriod("Period: Status Normal\n"))
	assert.Equal(t, "2024-03-15 00:00 - 2024-03-16 00:00",
		extractPeriod("header\n2024-03-15 00:00 - 2024-03-16 00:00\nfooter"))
}

func TestFindSection(t *testing.T) {
	body, ok := FindSection(sampleReport, SectionOperations)
	require.True(t, ok)
	assert.Contains(t, body, "Drilled ahead")
	assert.NotContains(t, body, "Fluid Density")

	_, ok = FindSection("text without headers", SectionGas)
	assert.False(t, ok)

	_, ok = FindSection(sampleReport, "no_such_section")
	assert.False(t, ok)
}

func TestDrillingFluidZipsUnevenColumns(t *testing.T) {
	text := `Drilling Fluid
Fluid Density (g/cm3)
1.45
Fluid Density (g/cm3)
1.50
Funnel Visc (s)
52
Fluid Type
OBM
`
	samples := extractDrillingFluid(text)
	require.Len(t, samples, 2)

	assert.Equal(t, 1.45, *samples[0].Density)
	assert.Equal(t, 52.0, *samples[0].Viscosity)
	assert.Equal(t, "OBM", samples[0].Type)

	// The shorter columns run out; the extra density keeps null companions.
	assert.Equal(t, 1.5, *samples[1].Density)
	assert.Nil(t, samples[1].Viscosity)
	assert.Equal(t, "", samples[1].Type)
}

func TestGasReadingsSkipShortLines(t *testing.T) {
	text := "Gas Reading Infor mation\n2795.0 450\n2796.0 1.8 9000 450 12 5 trip\n"
	readings := extractGasReadings(text)
	require.Len(t, readings, 1)
	assert.Equal(t, 2796.0, *readings[0].Depth)
	assert.Equal(t, model.GasClassTrip, readings[0].Class)
}
