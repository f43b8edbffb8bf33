package config

// Page identifies which screen the TUI is showing.
type Page int

const (
	PageTasks Page = iota
	PageSettings
	PageHome
)

// ClickableArea represents a clickable region for mouse support
type ClickableArea struct {
	X, Y          int
	Width, Height int
	TaskID        uint64
}

// Contains reports whether the cell (x, y) falls inside the area.
func (a ClickableArea) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}
