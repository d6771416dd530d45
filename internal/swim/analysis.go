package swim

// PeriodKind separates the two shapes a period analysis can take.
type PeriodKind string

const (
	Freestyle PeriodKind = "freestyle"
	Recovery  PeriodKind = "recovery"
)

var (
	freestyleFields = []string{"start_time", "end_time", "observations", "spirit_guidance", "technique_guidance", "speed_guidance", "metrics_analysis"}
	recoveryFields  = []string{"start_time", "end_time", "observations", "spirit_guidance", "technique_guidance", "energy_management", "breathing_analysis"}
)

// Fields returns the JSON keys a period of this kind must carry.
func (k PeriodKind) Fields() []string {
	if k == Freestyle {
		return freestyleFields
	}
	return recoveryFields
}

// Period describes one of the four fixed analysis windows.
type Period struct {
	Key   string // JSON key in the analysis object
	Label string // human label used in the prompt
	Kind  PeriodKind
	Start string // illustrative window start
	End   string // illustrative window end
}

// Periods are the four analysis windows, in session order.
var Periods = []Period{
	{Key: "first_form_freestyle", Label: "First Form Freestyle", Kind: Freestyle, Start: "0:00", End: "5:00"},
	{Key: "first_period_recovery", Label: "First Period Recovery", Kind: Recovery, Start: "5:00", End: "10:00"},
	{Key: "second_form_freestyle", Label: "Second Form Freestyle", Kind: Freestyle, Start: "10:00", End: "15:00"},
	{Key: "second_period_recovery", Label: "Second Period Recovery", Kind: Recovery, Start: "15:00", End: "20:00"},
}

// FreestylePeriod is the coaching narrative for a freestyle window.
type FreestylePeriod struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Observations      string `json:"observations"`
	SpiritGuidance    string `json:"spirit_guidance"`
	TechniqueGuidance string `json:"technique_guidance"`
	SpeedGuidance     string `json:"speed_guidance"`
	MetricsAnalysis   string `json:"metrics_analysis"`
}

// RecoveryPeriod is the coaching narrative for a recovery window.
type RecoveryPeriod struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Observations      string `json:"observations"`
	SpiritGuidance    string `json:"spirit_guidance"`
	TechniqueGuidance string `json:"technique_guidance"`
	EnergyManagement  string `json:"energy_management"`
	BreathingAnalysis string `json:"breathing_analysis"`
}

// Analysis is the structured four-period result.
type Analysis struct {
	FirstFormFreestyle   FreestylePeriod `json:"first_form_freestyle"`
	FirstPeriodRecovery  RecoveryPeriod  `json:"first_period_recovery"`
	SecondFormFreestyle  FreestylePeriod `json:"second_form_freestyle"`
	SecondPeriodRecovery RecoveryPeriod  `json:"second_period_recovery"`
}
