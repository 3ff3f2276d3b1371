package extraction

import "strings"

// scanState is the state of the skill-section scanner.
type scanState int

const (
	stateIdle scanState = iota
	stateCapturing
)

// boundaryKeywords terminate skill capture when any of them appears in a
// line while capturing. The match is a case-insensitive substring match.
var boundaryKeywords = []string{"experience", "education", "projects"}

// scanLine is the pure transition function of the scanner: given the current
// state and one line, it returns the next state, whether the line belongs to
// the skill section, and whether scanning should stop.
func scanLine(state scanState, line string) (next scanState, emit, stop bool) {
	lower := strings.ToLower(line)

	switch state {
	case stateIdle:
		if strings.Contains(lower, "skill") {
			// The header line itself is consumed, not emitted.
			return stateCapturing, false, false
		}
		return stateIdle, false, false

	case stateCapturing:
		for _, kw := range boundaryKeywords {
			if strings.Contains(lower, kw) {
				// The boundary line is excluded and ends the scan.
				return stateIdle, false, true
			}
		}
		return stateCapturing, true, false
	}

	return state, false, false
}

// ExtractSkillSection scans extracted lines top to bottom and returns the
// lines of the candidate's declared skills section, in order of appearance.
// Lines are captured verbatim (trimmed) between a line containing "skill"
// and the first subsequent boundary line. A document with no skill header
// yields an empty list. A header immediately followed by a boundary line
// also yields an empty list; that is accepted source behavior.
func ExtractSkillSection(lines []string) []string {
	skills := make([]string, 0)
	state := stateIdle

	for _, line := range lines {
		next, emit, stop := scanLine(state, strings.TrimSpace(line))
		if emit {
			skills = append(skills, strings.TrimSpace(line))
		}
		if stop {
			break
		}
		state = next
	}
	return skills
}
