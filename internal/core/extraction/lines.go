package extraction

import (
	"regexp"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/common"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

var (
	fluidDensityRe = regexp.MustCompile(`(?i)Fluid\s*Density\s*\(g/cm3\)\s*\n([0-9.]+)`)
	fluidViscRe    = regexp.MustCompile(`(?i)Funnel\s*Visc\s*\(s\)\s*\n([0-9.]+)`)
	fluidTypeRe    = regexp.MustCompile(`(?i)Fluid\s*Type\s*\n([^\n]+)`)
)

// extractDrillingFluid reads density, viscosity and type as three
// independently located column lists. The source table's rows do not align
// across the columns, so samples are zipped by index up to the longest list
// with missing values left null. Best-effort pairing, not a guaranteed join.
func extractDrillingFluid(text string) []model.FluidSample {
	body, ok := FindSection(text, SectionDrillingFluid)
	if !ok {
		return nil
	}

	densities := captureFloats(body, fluidDensityRe)
	viscosities := captureFloats(body, fluidViscRe)
	var types []string
	for _, m := range fluidTypeRe.FindAllStringSubmatch(body, -1) {
		types = append(types, strings.TrimSpace(m[1]))
	}

	n := max(len(densities), max(len(viscosities), len(types)))
	samples := make([]model.FluidSample, 0, n)
	for i := 0; i < n; i++ {
		var s model.FluidSample
		if i < len(densities) {
			s.Density = common.Float(densities[i])
		}
		if i < len(viscosities) {
			s.Viscosity = common.Float(viscosities[i])
		}
		if i < len(types) {
			s.Type = types[i]
		}
		samples = append(samples, s)
	}
	return samples
}

func captureFloats(body string, re *regexp.Regexp) []float64 {
	var out []float64
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		if v := common.FirstBareNumber(m[1]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// extractSurvey expects at least four bare numbers per station line, read
// positionally as MD, TVD, inclination, azimuth.
func extractSurvey(text string) []model.SurveyStation {
	body, ok := FindSection(text, SectionSurvey)
	if !ok {
		return nil
	}

	var stations []model.SurveyStation
	for _, line := range nonEmptyLines(body) {
		if strings.Contains(line, "Depth") {
			continue
		}
		numbers := common.Numbers(line)
		if len(numbers) < 4 {
			continue
		}
		stations = append(stations, model.SurveyStation{
			DepthMD:     numbers[0],
			DepthTVD:    numbers[1],
			Inclination: numbers[2],
			Azimuth:     numbers[3],
		})
	}
	return stations
}

// extractLithology takes the first two bare numbers of a line as the interval
// bounds and keeps the line with all numerals stripped as the description.
func extractLithology(text string) []model.LithologyInterval {
	body, ok := FindSection(text, SectionLithology)
	if !ok {
		return nil
	}

	var intervals []model.LithologyInterval
	for _, line := range nonEmptyLines(body) {
		if strings.Contains(line, "Start Depth") {
			continue
		}
		numbers := common.Numbers(line)
		if len(numbers) < 2 {
			continue
		}
		intervals = append(intervals, model.LithologyInterval{
			StartDepth:  numbers[0],
			EndDepth:    numbers[1],
			Description: common.StripNumbers(line),
		})
	}
	return intervals
}

// extractGasReadings parses gas lines with at least three bare numbers.
// Column alignment in the source is ambiguous, so percentage, C1 and C2 are
// read from fixed negative offsets off the end of the numeric list. This is a
// known weak point kept for compatibility with the documents processed so
// far; improving it needs an explicit column-detection step, not new offsets.
func extractGasReadings(text string) []model.GasReading {
	body, ok := FindSection(text, SectionGas)
	if !ok {
		return nil
	}

	var readings []model.GasReading
	for _, line := range nonEmptyLines(body) {
		if strings.Contains(line, "Time") || strings.Contains(line, "Class") {
			continue
		}
		numbers := common.Numbers(line)
		if len(numbers) < 3 {
			continue
		}

		reading := model.GasReading{
			Depth: common.Float(numbers[0]),
			C2PPM: common.Float(numbers[len(numbers)-3]),
			Class: model.GasClassTrip,
		}
		if len(numbers) >= 4 {
			reading.C1PPM = common.Float(numbers[len(numbers)-4])
		}
		if len(numbers) >= 5 {
			reading.GasPercentage = common.Float(numbers[len(numbers)-5])
		}
		if strings.Contains(strings.ToLower(line), "peak") {
			reading.Class = model.GasClassPeak
		}
		readings = append(readings, reading)
	}
	return readings
}
