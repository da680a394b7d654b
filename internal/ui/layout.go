package ui

const (
	headerHeight  = 3 // bordered single line
	helpBarHeight = 2 // top border + hint line
	listChrome    = 3 // title line + list border top and bottom
	listPadding   = 4 // side borders + horizontal padding
	minListRows   = 1
)

// LayoutDimensions holds the calculated dimensions for each section
type LayoutDimensions struct {
	Width  int
	Height int

	BodyHeight int
	ListRows   int
	RowWidth   int

	// Overlay box size inside the body
	PopupWidth  int
	PopupHeight int
}

// calculateLayout computes the layout dimensions based on terminal size
func calculateLayout(width, height int) LayoutDimensions {
	layout := LayoutDimensions{Width: width, Height: height}

	layout.BodyHeight = height - headerHeight - helpBarHeight
	if layout.BodyHeight < minListRows+listChrome {
		layout.BodyHeight = minListRows + listChrome
	}
	layout.ListRows = layout.BodyHeight - listChrome

	layout.RowWidth = width - listPadding
	if layout.RowWidth < 10 {
		layout.RowWidth = 10
	}

	// Popups take the middle 70% horizontally and 50% vertically
	layout.PopupWidth = width * 70 / 100
	if layout.PopupWidth < 20 {
		layout.PopupWidth = 20
	}
	layout.PopupHeight = layout.BodyHeight / 2
	if layout.PopupHeight < 3 {
		layout.PopupHeight = 3
	}

	return layout
}

// visibleWindow returns the half-open range of rows to draw.
// It starts at the store's scroll offset and only shifts further when the
// highlighted row would otherwise fall outside a short viewport.
func visibleWindow(n, scroll, selected int, hasSelection bool, rows int) (start, end int) {
	if n == 0 || rows <= 0 {
		return 0, 0
	}

	start = min(max(scroll, 0), n-1)
	if hasSelection {
		if selected < start {
			start = selected
		}
		if selected >= start+rows {
			start = selected - rows + 1
		}
	}
	end = min(n, start+rows)
	return start, end
}
