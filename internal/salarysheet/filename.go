package salarysheet

import (
	"fmt"
	"strings"
	"time"
)

// RenderFilename substitutes the pattern tokens {MMM} (3-letter month),
// {MM} (zero-padded month), {YYYY} and {SITE}, and guarantees an .xlsx
// extension.
func RenderFilename(pattern string, month, year int, site string) string {
	if pattern == "" {
		pattern = "salary-sheet-{MM}-{YYYY}.xlsx"
	}

	name := strings.NewReplacer(
		"{MMM}", time.Month(month).String()[:3],
		"{MM}", fmt.Sprintf("%02d", month),
		"{YYYY}", fmt.Sprintf("%d", year),
		"{SITE}", site,
	).Replace(pattern)

	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}
