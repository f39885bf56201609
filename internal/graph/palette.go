package graph

import "strings"

// Palette maps language tags to display colors. It is immutable once built.
type Palette struct {
	fallback string
	byTag    map[string]string
}

// NewPalette copies byTag; tags are matched case-insensitively.
func NewPalette(fallback string, byTag map[string]string) Palette {
	m := make(map[string]string, len(byTag))
	for tag, color := range byTag {
		m[strings.ToLower(tag)] = color
	}
	return Palette{fallback: fallback, byTag: m}
}

// Color returns the color configured for tag, or the fallback color.
func (p Palette) Color(tag string) string {
	if c, ok := p.byTag[strings.ToLower(tag)]; ok {
		return c
	}
	return p.fallback
}

func (p Palette) Fallback() string { return p.fallback }
