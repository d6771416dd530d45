package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briangreenhill/swimcoach/internal/swim"
)

// Parse strictly decodes model output into an Analysis. A surrounding
// markdown code fence is tolerated; anything else that is not a JSON object
// with every period and every string field fails.
func Parse(text string) (*swim.Analysis, error) {
	body := stripFence(text)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	if top == nil {
		return nil, fmt.Errorf("decode analysis: not a JSON object")
	}

	for _, p := range swim.Periods {
		raw, ok := top[p.Key]
		if !ok {
			return nil, fmt.Errorf("missing period %q", p.Key)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("period %q is not an object", p.Key)
		}
		for _, f := range p.Kind.Fields() {
			v, ok := fields[f]
			if !ok {
				return nil, fmt.Errorf("period %q: missing field %q", p.Key, f)
			}
			if _, ok := v.(string); !ok {
				return nil, fmt.Errorf("period %q: field %q is not a string", p.Key, f)
			}
		}
	}

	var out swim.Analysis
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &out, nil
}

// stripFence removes a ```json ... ``` wrapper if one is present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
