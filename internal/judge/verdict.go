package judge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Verdict is the structured decision extracted from the judge's raw output
type Verdict struct {
	Valid     bool
	Reasoning string
}

// ParseVerdict normalizes the judge's free-form response into a Verdict.
// The model is instructed to return bare JSON but routinely wraps it in a
// markdown fence or conversational prose, so the accepted grammar is: an
// optional fenced code block (with optional language tag), optional leading
// chatter before the first JSON object, one JSON object, optional trailing
// commentary. Anything else is ErrMalformedVerdict, and the pipeline fails
// closed on it.
func ParseVerdict(raw string) (Verdict, error) {
	text := stripCodeFence(raw)

	obj, ok := firstJSONObject(text)
	if !ok {
		return Verdict{}, fmt.Errorf("%w: no JSON object in response", ErrMalformedVerdict)
	}

	// valid must be present and boolean; reasoning is optional
	var decoded struct {
		Valid     *bool  `json:"valid"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(obj), &decoded); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	if decoded.Valid == nil {
		return Verdict{}, fmt.Errorf("%w: missing required field \"valid\"", ErrMalformedVerdict)
	}

	return Verdict{Valid: *decoded.Valid, Reasoning: decoded.Reasoning}, nil
}

// stripCodeFence removes one leading/trailing markdown code fence, tolerating
// a language tag after the opening backticks
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		// Single-line fence like ```json {...} ```
		s = strings.Trim(s, "`")
		s = strings.TrimPrefix(strings.TrimSpace(s), "json")
		return strings.TrimSpace(s)
	}
	s = s[firstNL+1:]

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// firstJSONObject returns the first balanced JSON object in s, skipping any
// leading prose and ignoring trailing text. Braces inside JSON strings do not
// count toward balance.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
