package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders the reviewed share like [████░░░░] 45%.
// The bar turns green once every subject has a verdict.
func RenderProgress(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	pct = min(max(pct, 0), 1)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	if done >= total {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
