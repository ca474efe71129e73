// Package layers provides utility functions for creating and managing UI layers
package layers

import "charm.land/lipgloss/v2"

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	x := (screenWidth - contentWidth) / 2
	y := (screenHeight - contentHeight) / 2

	x = max(x, 0)
	y = max(y, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

// ModalWidth returns the outer width of a dialog box on a screen of
// screenWidth cells. Narrow screens shrink the dialog below ModalMinWidth
// rather than overflow.
func ModalWidth(screenWidth int) int {
	width := min(max(screenWidth/ModalDefaultWidthDivisor, ModalMinWidth), ModalMaxWidth)
	return max(min(width, screenWidth-ModalScreenMargin), ModalBorderPaddingWidth+1)
}

// ModalContentWidth is the width left for text inside a dialog of ModalWidth
func ModalContentWidth(screenWidth int) int {
	return ModalWidth(screenWidth) - ModalBorderPaddingWidth
}
