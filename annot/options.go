package annot

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DateStamp as the stamp symbol makes the stamp tool place the current date
// instead of a literal symbol.
const DateStamp = "date"

// ToolOptions is the current paint style. It is copied into annotations at
// creation time and never referenced live afterward, so changing it leaves
// existing annotations alone.
type ToolOptions struct {
	Color       string
	StrokeWidth float64
	FontSize    float64
	StampSymbol string
	Opacity     float64
}

// DefaultOptions mirrors the editor's initial toolbar state.
func DefaultOptions() ToolOptions {
	return ToolOptions{
		Color:       "#ffeb3b",
		StrokeWidth: 2,
		FontSize:    14,
		StampSymbol: "✓",
		Opacity:     1,
	}
}

// Validate rejects styles that could not be committed into an annotation.
func (o ToolOptions) Validate() error {
	if _, err := colorful.Hex(o.Color); err != nil {
		return fmt.Errorf("tool color %q: %w", o.Color, err)
	}
	if o.StrokeWidth <= 0 {
		return fmt.Errorf("stroke width must be positive, got %v", o.StrokeWidth)
	}
	if o.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", o.FontSize)
	}
	if o.Opacity < 0 || o.Opacity > 1 {
		return fmt.Errorf("opacity must be in [0,1], got %v", o.Opacity)
	}
	return nil
}
