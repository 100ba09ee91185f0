package session

// FindByID returns the session with the given id.
func FindByID(list []Session, id int) (Session, bool) {
	if i := IndexOf(list, id); i >= 0 {
		return list[i], true
	}
	return Session{}, false
}

// IndexOf returns the index of the first session with the given id, or -1.
// The backend can list two sessions under one id; the first one wins.
func IndexOf(list []Session, id int) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a session with the given id is in the list.
func Contains(list []Session, id int) bool {
	_, ok := FindByID(list, id)
	return ok
}

// Without returns a new slice holding every session except id, preserving
// order. The input slice is never modified.
func Without(list []Session, id int) []Session {
	out := make([]Session, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// FindByRFPFilename returns the first session (in list order) created from
// the given RFP file. The backend lists newest first, so this is the most
// recent one.
func FindByRFPFilename(list []Session, filename string) (Session, bool) {
	if filename == "" {
		return Session{}, false
	}
	for _, s := range list {
		if s.RFPFilename == filename {
			return s, true
		}
	}
	return Session{}, false
}

// Clone returns a copy of the list so callers can hand it out without
// sharing the backing array.
func Clone(list []Session) []Session {
	if list == nil {
		return nil
	}
	out := make([]Session, len(list))
	copy(out, list)
	return out
}
