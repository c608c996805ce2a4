package input

// IntentType discriminates semantic editor actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // q, Ctrl+C
	IntentResize // Terminal resize event

	// Pointer lifecycle (cell coordinates in X/Y)
	IntentPointerPress   // Primary button down edge
	IntentPointerDrag    // Motion while primary button held
	IntentPointerRelease // Primary button up edge; also ESC (cancel)

	// Roster edits
	IntentAddDancer    // a - add at hover cell
	IntentRemoveDancer // x - remove dancer under hover cell

	// Keyboard positioning
	IntentNudge // h,j,k,l, arrows - move active dancer

	// View toggles
	IntentToggleGrid // g
	IntentToggleMute // m
)

// Intent is a parsed semantic action
// X/Y carry the pointer cell for pointer and roster intents; DX/DY carry
// the unit direction for nudges
type Intent struct {
	Type   IntentType
	X, Y   int
	DX, DY int
}
