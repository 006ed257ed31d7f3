package index

import (
	"fmt"
	"strings"
)

// FormatResult reproduces the original's two-permalink presentation
// (title-based and doc-id-based Wikipedia links) with an "Unknown Title"
// fallback, a detail the distilled spec.md collapsed into "print up to 10
// survivors" — restored here per SPEC_FULL.md §4.5.
func FormatResult(rank int, r Result) string {
	if r.Title == "" || r.Title == "Unknown Title" {
		return fmt.Sprintf("  [%d] (ID: %d) - Unknown Title\n      Score: %.4f\n      Link: https://en.wikipedia.org/wiki/Special:Redirect/page/%d",
			rank, r.DocID, r.Score, r.DocID)
	}

	linkTitle := strings.ReplaceAll(r.Title, " ", "_")
	return fmt.Sprintf("  [%d] %s\n      Score: %.4f | ID: %d\n      Link: https://en.wikipedia.org/wiki/%s\n      Link: https://en.wikipedia.org/wiki/Special:Redirect/page/%d",
		rank, r.Title, r.Score, r.DocID, linkTitle, r.DocID)
}
