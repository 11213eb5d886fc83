package sanitize

import "strings"

const fence = "```"

// SQL drops every line that opens or closes a markdown code fence and joins
// the rest with "\n". It does not look at the SQL itself: an all-fence input
// comes back empty and is left for the executor to refuse.
func SQL(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
