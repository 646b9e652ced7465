package reconcile

import "fmt"

// Describe returns a human readable plan of the sequence, one line per action.
// The CLI prints it before asking the operator for confirmation.
func Describe(seq *Sequence) []string {
	lines := make([]string, 0, len(seq.Actions))
	for i, a := range seq.Actions {
		line := fmt.Sprintf("%d. %s %s", i+1, a.Type, a.Key)
		if a.Reason != "" {
			line += " (" + a.Reason + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
