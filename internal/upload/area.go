package upload

// Area is the view state of one drag/drop file picker. A fresh Area is
// rendered for every page view, so a successful upload elsewhere resets it.
type Area struct {
	// Field is the multipart field name of the file input.
	Field     string
	MaxSizeMB int
	Disabled  bool
	Error     string
	Accept    string
}

// NewArea returns an enabled area for the given field.
func NewArea(field string, maxSizeMB int) Area {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	return Area{Field: field, MaxSizeMB: maxSizeMB, Accept: Accept}
}

// WithError records a failed validation. The area stays usable so the
// operator can pick another file.
func (a Area) WithError(err error) Area {
	a.Error = Message(err)
	return a
}

// Inert disables the area.
func (a Area) Inert() Area {
	a.Disabled = true
	return a
}
