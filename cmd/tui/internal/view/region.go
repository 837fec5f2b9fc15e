package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

// RegionPicker cycles through the region selectors with left/right or picks one by number.
type RegionPicker struct {
	selectors []string
	selected  int
}

func NewRegionPicker() RegionPicker {
	return RegionPicker{selectors: sales.Selectors()}
}

// Selected returns the current selector.
func (p RegionPicker) Selected() string {
	return p.selectors[p.selected]
}

// Update applies a key press. changed reports whether the selection moved.
func (p RegionPicker) Update(msg tea.KeyMsg) (picker RegionPicker, changed bool) {
	prev := p.selected

	switch msg.String() {
	case "left", "h":
		p.selected = (p.selected - 1 + len(p.selectors)) % len(p.selectors)
	case "right", "l", "tab":
		p.selected = (p.selected + 1) % len(p.selectors)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(p.selectors) {
			p.selected = n - 1
		}
	}

	return p, p.selected != prev
}

func (p RegionPicker) View() string {
	parts := make([]string, len(p.selectors))
	for i, s := range p.selectors {
		label := fmt.Sprintf("%d %s", i+1, s)
		if i == p.selected {
			parts[i] = activeStyle.Render("[" + label + "]")
			continue
		}

		parts[i] = " " + label + " "
	}

	return "Region: " + strings.Join(parts, " ")
}
