package docmerge

import "path"

// Unit represents one independently generated documentation source,
// usually a single crate.
type Unit struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

// Validate returns an error if the unit contains invalid fields.
func (u *Unit) Validate() error {
	if u.Root == "" {
		return Errorf(EINVALID, "unit root required")
	}
	return ValidateUnitName(u.Name)
}

// EntryPage returns the unit's landing page relative to the site root.
func (u *Unit) EntryPage() string {
	return EntryPage(u.Name)
}

// EntryPage returns the landing page of the named unit relative to the site root.
func EntryPage(name string) string {
	return path.Join(name, EntryPointFile)
}

// ValidateUnitName returns an error unless name is a non-empty token of
// ASCII letters, digits and underscores. Unit names double as directory
// names in the merged site.
func ValidateUnitName(name string) error {
	if name == "" {
		return Errorf(EINVALID, "unit name required")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return Errorf(EINVALID, "invalid unit name %q", name)
		}
	}
	return nil
}
