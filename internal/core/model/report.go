package model

// Report is the structured form of one daily drilling report document.
// Every field is always present in the serialized form; unparsed values are
// null, never missing keys. A report that failed extraction carries Error and
// nothing else besides Filename, and is excluded from all downstream stages.
type Report struct {
	Filename string `json:"filename"`
	Wellbore string `json:"wellbore"`
	Period   string `json:"period"`
	Operator string `json:"operator"`
	RigName  string `json:"rig_name"`

	Summary ActivitySummary `json:"summary"`

	DepthMD  *float64 `json:"depth_md"`
	DepthTVD *float64 `json:"depth_tvd"`
	HoleSize *float64 `json:"hole_size"`

	Operations    []Operation         `json:"operations"`
	DrillingFluid []FluidSample       `json:"drilling_fluid"`
	SurveyData    []SurveyStation     `json:"survey_data"`
	Lithology     []LithologyInterval `json:"lithology"`
	GasReadings   []GasReading        `json:"gas_readings"`

	// Derived by enrichment, immutable afterwards.
	DetectedAnomalies []Anomaly   `json:"detected_anomalies"`
	ClassifiedEvents  []Event     `json:"classified_events"`
	AISummary         string      `json:"ai_summary"`
	ExtractedParams   *Parameters `json:"extracted_params"`

	Error string `json:"error,omitempty"`
}

// Failed reports if extraction could not produce a usable record.
func (r *Report) Failed() bool {
	return r.Error != ""
}

// ActivitySummary holds the free-text summary blocks of the report.
type ActivitySummary struct {
	Activities24h string `json:"activities_24h"`
	Planned24h    string `json:"planned_24h"`
}

// Text returns the summary blocks joined for keyword scans.
func (s ActivitySummary) Text() string {
	return s.Activities24h + "\n" + s.Planned24h
}

// Operation is one logged activity line. Remark keeps the source line verbatim;
// anomaly detection and classification key off its text, not the parsed fields.
type Operation struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Depth     *float64 `json:"depth"`
	Activity  string   `json:"activity"`
	State     string   `json:"state"`
	Remark    string   `json:"remark"`
}

// Operation states.
const (
	StateOK      = "ok"
	StateFail    = "fail"
	StateUnknown = "unknown"
)

type FluidSample struct {
	Density   *float64 `json:"density"`
	Viscosity *float64 `json:"viscosity"`
	Type      string   `json:"type"`
}

type SurveyStation struct {
	DepthMD     float64 `json:"depth_md"`
	DepthTVD    float64 `json:"depth_tvd"`
	Inclination float64 `json:"inclination"`
	Azimuth     float64 `json:"azimuth"`
}

type LithologyInterval struct {
	StartDepth  float64 `json:"start_depth"`
	EndDepth    float64 `json:"end_depth"`
	Description string  `json:"description"`
}

// GasReading classes.
const (
	GasClassPeak = "peak"
	GasClassTrip = "trip"
)

type GasReading struct {
	Depth         *float64 `json:"depth"`
	GasPercentage *float64 `json:"gas_percentage"`
	C1PPM         *float64 `json:"c1_ppm"`
	C2PPM         *float64 `json:"c2_ppm"`
	Class         string   `json:"class"`
}
