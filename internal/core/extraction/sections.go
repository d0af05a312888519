package extraction

import "regexp"

// Section names recognized by the extractor.
const (
	SectionSummary       = "summary"
	SectionOperations    = "operations"
	SectionDrillingFluid = "drilling_fluid"
	SectionSurvey        = "survey"
	SectionLithology     = "lithology"
	SectionGas           = "gas"
	SectionPorePressure  = "pore_pressure"
	SectionStratigraphic = "stratigraphic"
)

type sectionDef struct {
	name   string
	header *regexp.Regexp
}

// The source PDFs interleave rendering artifacts inside header words, so the
// patterns tolerate arbitrary whitespace mid-word. New sections only need a
// row here; the lookup logic stays untouched.
var sectionTable = []sectionDef{
	{SectionSummary, regexp.MustCompile(`(?i)Summar\s*y\s*repor\s*t`)},
	{SectionOperations, regexp.MustCompile(`(?i)Operations`)},
	{SectionDrillingFluid, regexp.MustCompile(`(?i)Drilling\s*Fluid`)},
	{SectionSurvey, regexp.MustCompile(`(?i)Sur\s*vey\s*Station`)},
	{SectionLithology, regexp.MustCompile(`(?i)Lithology\s*Infor\s*mation`)},
	{SectionGas, regexp.MustCompile(`(?i)Gas\s*Reading\s*Infor\s*mation`)},
	{SectionPorePressure, regexp.MustCompile(`(?i)Pore\s*Pressure`)},
	{SectionStratigraphic, regexp.MustCompile(`(?i)Stratigraphic\s*Infor\s*mation`)},
}

// FindSection returns the body of the named section: the text between the end
// of its header and the start of the next recognized section header, or the
// end of the document. The second return is false when the header is absent.
func FindSection(text, name string) (string, bool) {
	var def *sectionDef
	for i := range sectionTable {
		if sectionTable[i].name == name {
			def = &sectionTable[i]
			break
		}
	}
	if def == nil {
		return "", false
	}

	loc := def.header.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	body := text[loc[1]:]
	end := len(body)
	for i := range sectionTable {
		if sectionTable[i].name == name {
			continue
		}
		if next := sectionTable[i].header.FindStringIndex(body); next != nil && next[0] < end {
			end = next[0]
		}
	}
	return body[:end], true
}
