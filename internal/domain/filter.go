package domain

// NoteFilter narrows GetNotesFiltered results. Nil or empty fields are
// ignored; supplied fields combine with AND semantics. Multi-valued
// fields match when the note matches any listed value.
type NoteFilter struct {
	CategoryIDs []string
	TagIDs      []string
	Favorite    *bool
	Archived    *bool
	Priorities  []Priority
}

// IsEmpty reports whether no constraint is set.
func (f *NoteFilter) IsEmpty() bool {
	return len(f.CategoryIDs) == 0 && len(f.TagIDs) == 0 &&
		f.Favorite == nil && f.Archived == nil && len(f.Priorities) == 0
}

// Matches applies the filter to a note. Used by the embedded backend's
// linear scan; the relational backend compiles the same semantics to SQL.
func (f *NoteFilter) Matches(n *Note) bool {
	if len(f.CategoryIDs) > 0 && !containsString(f.CategoryIDs, n.CategoryID) {
		return false
	}
	if len(f.TagIDs) > 0 {
		found := false
		for _, tagID := range f.TagIDs {
			if n.HasTag(tagID) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Favorite != nil && n.IsFavorite != *f.Favorite {
		return false
	}
	if f.Archived != nil && n.IsArchived != *f.Archived {
		return false
	}
	if len(f.Priorities) > 0 {
		found := false
		for _, p := range f.Priorities {
			if n.Priority == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
