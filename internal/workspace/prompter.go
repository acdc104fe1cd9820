package workspace

// Choice is the answer to an unsaved-changes prompt.
type Choice int

const (
	ChoiceSave Choice = iota
	ChoiceDiscard
	ChoiceCancel
)

// String returns the choice name.
func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// Prompter asks the user questions on behalf of the workspace. The terminal
// frontend answers them from the status line.
type Prompter interface {
	// ConfirmClose asks what to do with unsaved changes in the named pane.
	ConfirmClose(name string) Choice

	// SavePath asks where to save a pane, suggesting a name. ok is false if
	// the user cancelled.
	SavePath(suggested string) (path string, ok bool)
}
