package domain

// Statistics is the uniform dataset summary produced by either backend.
// Overdue is evaluated against the time of the call, never cached.
type Statistics struct {
	TotalNotes       int     `json:"totalNotes"`
	FavoriteNotes    int     `json:"favoriteNotes"`
	ArchivedNotes    int     `json:"archivedNotes"`
	NotesWithRemind  int     `json:"notesWithRemind"`
	OverdueReminders int     `json:"overdueReminders"`
	TotalCategories  int     `json:"totalCategories"`
	TotalTags        int     `json:"totalTags"`
	AvgContentLength float64 `json:"avgContentLength"`
	TotalWords       int     `json:"totalWords"`
	StorageType      string  `json:"storageType"`
}
