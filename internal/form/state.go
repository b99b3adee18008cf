package form

import "path/filepath"

// State holds the named field values of one form session.
type State struct {
	values   map[string]string
	required map[string]bool
	enhanced bool
}

// NewState builds a form in the given role. The role is applied through
// SetRole so the initial pass matches a user-driven transition.
func NewState(role Role) *State {
	s := &State{
		values:   make(map[string]string, len(Fields)),
		required: make(map[string]bool, len(Fields)),
	}
	for _, f := range Fields {
		s.values[f.Name] = ""
		if !f.Enhanced {
			s.required[f.Name] = f.Markup
		}
	}
	s.SetRole(role)
	return s
}

// SetRole is the mode controller. Entering enhanced reveals the group and
// marks its markup-required fields as required. Entering basic hides the
// group, drops every required flag in it and clears every value in it,
// whether or not the field was ever required.
func (s *State) SetRole(role Role) {
	role = ParseRole(string(role))
	s.values[FieldRole] = string(role)
	s.enhanced = role == RoleEnhanced
	for _, f := range EnhancedFields() {
		if s.enhanced {
			s.required[f.Name] = f.Markup
			continue
		}
		s.required[f.Name] = false
		s.values[f.Name] = ""
	}
}

// Role returns the current role.
func (s *State) Role() Role {
	return ParseRole(s.values[FieldRole])
}

// EnhancedVisible reports whether the enhanced group is shown.
func (s *State) EnhancedVisible() bool {
	return s.enhanced
}

// Required reports whether a field currently must be filled.
func (s *State) Required(name string) bool {
	return s.required[name]
}

// Get returns a field value, or "" for unknown fields.
func (s *State) Get(name string) string {
	return s.values[name]
}

// Set stores a raw value. Setting the role runs the mode controller.
// Enhanced fields are inert while the group is hidden and writes to them
// are dropped. Returns false when the value was not stored.
func (s *State) Set(name, value string) bool {
	f, ok := Lookup(name)
	if !ok {
		return false
	}
	if f.Name == FieldRole {
		s.SetRole(Role(value))
		return true
	}
	if f.Enhanced && !s.enhanced {
		return false
	}
	s.values[name] = value
	return true
}

// Values returns a copy of every field value in wire order semantics.
func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// EPUB returns the EPUB file reference.
func (s *State) EPUB() FileRef {
	return FileRef{Path: s.values[FieldEPUBFile]}
}

// ONIX returns the ONIX file reference.
func (s *State) ONIX() FileRef {
	return FileRef{Path: s.values[FieldONIXFile]}
}

// FileRef points at a local file chosen for upload. An empty path is the
// null handle.
type FileRef struct {
	Path string
}

// Present reports whether a file was chosen.
func (f FileRef) Present() bool {
	return f.Path != ""
}

// Name returns the file name as sent in the multipart part.
func (f FileRef) Name() string {
	if f.Path == "" {
		return ""
	}
	return filepath.Base(f.Path)
}
