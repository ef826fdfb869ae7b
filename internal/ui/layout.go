package ui

const (
	minCols  = 60
	minRows  = 20
	wideCols = 120
	wideRows = 30
)

// DetermineLayoutMode picks the layout for a terminal size. Wide puts the
// penalty panel beside the closing slide instead of below it.
func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < minCols || rows < minRows {
		return LayoutTooSmall
	}
	if cols >= wideCols && rows >= wideRows {
		return LayoutWide
	}
	return LayoutMedium
}
