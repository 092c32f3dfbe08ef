// Package form describes whether an entry form creates a new record or edits an existing one.
package form

// Mode is either Creating or Editing a record with a known id.
type Mode struct {
	id string
}

func Creating() Mode {
	return Mode{}
}

func Editing(id string) Mode {
	return Mode{id: id}
}

func (m Mode) IsEditing() bool {
	return m.id != ""
}

// ID returns the record being edited, or "" when creating.
func (m Mode) ID() string {
	return m.id
}

func (m Mode) String() string {
	if m.IsEditing() {
		return "editing " + m.id
	}

	return "creating"
}
