// Package prompt renders the coaching prompt sent to the generation service.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/briangreenhill/swimcoach/internal/swim"
)

var (
	tmpl   = template.Must(template.New("coaching").Parse(coachingTemplate))
	schema = buildSchema()
	labels = joinLabels()
)

type templateData struct {
	Name                                         string
	Labels                                       string
	Schema                                       string
	LapTimes, StrokeCounts, BreathCounts, Splits string
	DPS                                          string
}

// System returns the fixed system instruction.
func System() string {
	return systemInstruction
}

// Schema returns the JSON structure the model is asked to fill in.
func Schema() string {
	return schema
}

// Render builds the user prompt for a validated record. The output depends
// only on the record, so equal records render identical prompts.
func Render(rec swim.Record) (string, error) {
	var b strings.Builder
	err := tmpl.Execute(&b, templateData{
		Name:         rec.Name,
		Labels:       labels,
		Schema:       schema,
		LapTimes:     rec.LapTimes.String(),
		StrokeCounts: rec.StrokeCounts.String(),
		BreathCounts: rec.BreathCounts.String(),
		Splits:       rec.Splits.String(),
		DPS:          rec.DPS.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render coaching prompt: %w", err)
	}
	return b.String(), nil
}

// buildSchema writes the analysis template with every key in a fixed order.
func buildSchema() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, p := range swim.Periods {
		fmt.Fprintf(&b, "    %s: {\n", quote(p.Key))
		fields := p.Kind.Fields()
		for j, f := range fields {
			var v string
			switch f {
			case "start_time":
				v = p.Start
			case "end_time":
				v = p.End
			default:
				v = fieldHints[string(p.Kind)][f]
			}
			sep := ","
			if j == len(fields)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "        %s: %s%s\n", quote(f), quote(v), sep)
		}
		if i == len(swim.Periods)-1 {
			b.WriteString("    }\n")
		} else {
			b.WriteString("    },\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

func joinLabels() string {
	names := make([]string, len(swim.Periods))
	for i, p := range swim.Periods {
		names[i] = p.Label
	}
	last := len(names) - 1
	return strings.Join(names[:last], ", ") + ", and " + names[last]
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
