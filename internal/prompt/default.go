package prompt

// systemInstruction is sent as the system message on every completion request.
const systemInstruction = `You are a professional swim coach producing structured analysis for freestyle swimming and recovery periods. Always respond in valid JSON only, with no commentary before or after the JSON object.`

// coachingTemplate is the user prompt. It only interpolates the record.
const coachingTemplate = `As a professional swim coach, analyze the performance of Swimmer {{.Name}} and provide guidance for four distinct periods: {{.Labels}}.

The response should be in this exact JSON structure:
{{.Schema}}

The start_time and end_time values above are illustrative default windows, not measured values. Adjust them only if the metrics clearly suggest different boundaries.

Base your analysis on these metrics:
- Lap times: {{.LapTimes}}
- Stroke counts: {{.StrokeCounts}}
- Breath counts: {{.BreathCounts}}
- Splits: {{.Splits}}
- DPS (Distance Per Stroke): {{.DPS}}

Consider the following in your analysis:
1. For Freestyle periods:
   - Focus on stroke efficiency and form
   - Analyze speed variations and consistency
   - Evaluate technique maintenance under fatigue

2. For Recovery periods:
   - Assess effectiveness of recovery techniques
   - Analyze breathing patterns and their impact
   - Evaluate energy conservation strategies
`

// fieldHints are the placeholder values shown in the JSON structure.
var fieldHints = map[string]map[string]string{
	"freestyle": {
		"observations":       "General observations about the freestyle form",
		"spirit_guidance":    "Mental and motivational feedback for freestyle",
		"technique_guidance": "Technical swimming advice specific to freestyle",
		"speed_guidance":     "Pace and speed recommendations",
		"metrics_analysis":   "Analysis of stroke count, DPS, and other metrics",
	},
	"recovery": {
		"observations":       "General observations about recovery",
		"spirit_guidance":    "Mental guidance during recovery",
		"technique_guidance": "Recovery technique recommendations",
		"energy_management":  "Energy conservation and recovery strategies",
		"breathing_analysis": "Analysis of breathing patterns during recovery",
	},
}
