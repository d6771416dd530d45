package analysis

import (
	"context"
	"sync/atomic"

	"github.com/briangreenhill/swimcoach/internal/llm"
	"github.com/briangreenhill/swimcoach/internal/swim"
)

const validAnalysisJSON = `{
  "first_form_freestyle": {"start_time": "0:00", "end_time": "5:00", "observations": "steady", "spirit_guidance": "stay loose", "technique_guidance": "high elbow", "speed_guidance": "hold 33s", "metrics_analysis": "DPS fades late"},
  "first_period_recovery": {"start_time": "5:00", "end_time": "10:00", "observations": "calm", "spirit_guidance": "reset", "technique_guidance": "long glide", "energy_management": "easy kick", "breathing_analysis": "bilateral"},
  "second_form_freestyle": {"start_time": "10:00", "end_time": "15:00", "observations": "faster", "spirit_guidance": "commit", "technique_guidance": "rotate", "speed_guidance": "negative split", "metrics_analysis": "stroke count up"},
  "second_period_recovery": {"start_time": "15:00", "end_time": "20:00", "observations": "tired", "spirit_guidance": "breathe", "technique_guidance": "relax hands", "energy_management": "slow down", "breathing_analysis": "every 3"}
}`

type fakeCompleter struct {
	calls atomic.Int32
	last  llm.Request
	fn    func(ctx context.Context) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.calls.Add(1)
	f.last = req
	return f.fn(ctx)
}

func respond(text string, err error) *fakeCompleter {
	return &fakeCompleter{fn: func(context.Context) (string, error) { return text, err }}
}

func testRecord() swim.Record {
	return swim.Record{
		Name:         "Alex",
		LapTimes:     swim.Series{32.5, 33.1},
		StrokeCounts: swim.Series{18, 19},
		BreathCounts: swim.Series{6, 7},
		Splits:       swim.Series{65.6},
		DPS:          swim.Series{2.1, 2},
	}
}
