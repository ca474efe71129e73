package layers

const (
	ModalDefaultWidthDivisor = 2

	ModalMinWidth = 36
	ModalMaxWidth = 60

	ModalBorderPaddingWidth = 6 // border + horizontal padding
	ModalScreenMargin       = 2
)
