package model

import "strings"

// ProfileName identifies a local profile. It is a display label only; there
// are no credentials attached to it.
type ProfileName string

// NormalizeProfileName trims surrounding whitespace from a requested name
func NormalizeProfileName(name string) ProfileName {
	return ProfileName(strings.TrimSpace(name))
}

// Valid returns true if the name is usable as a profile label
func (n ProfileName) Valid() bool {
	s := string(n)
	return s != "" && s == strings.TrimSpace(s)
}

// Roster is the ordered set of known profiles plus the active pointer
type Roster struct {
	Profiles []ProfileName
	Active   ProfileName // Empty when logged out
}

// Contains returns true if the roster already lists the name
func (r *Roster) Contains(name ProfileName) bool {
	for _, p := range r.Profiles {
		if p == name {
			return true
		}
	}
	return false
}

// LoggedIn returns true if a profile is active
func (r *Roster) LoggedIn() bool {
	return r.Active != ""
}
