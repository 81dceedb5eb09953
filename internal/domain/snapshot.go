package domain

import "time"

// SnapshotVersion is the fixed schema version of the export format.
const SnapshotVersion = 1

// Snapshot is the full-dataset export format. Import replaces all data:
// clear, then categories, then tags, then notes, so referential ids
// exist before dependents reference them.
type Snapshot struct {
	Notes           []SnapshotNote     `json:"notes"`
	Categories      []SnapshotCategory `json:"categories"`
	Tags            []SnapshotTag      `json:"tags"`
	ExportTimestamp time.Time          `json:"export_timestamp"`
	ExportVersion   int                `json:"export_version"`
	StorageType     string             `json:"storage_type"`
}

// SnapshotNote carries the full note field set in a stable encoding.
type SnapshotNote struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CategoryID string     `json:"categoryId"`
	TagIDs     []string   `json:"tagIds"`
	IsFavorite bool       `json:"isFavorite"`
	IsArchived bool       `json:"isArchived"`
	Color      string     `json:"color"`
	Priority   Priority   `json:"priority"`
	RemindAt   *time.Time `json:"remindAt,omitempty"`
	Encrypted  bool       `json:"encrypted"`
	SyncStatus SyncStatus `json:"syncStatus"`
	LastSynced *time.Time `json:"lastSynced,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type SnapshotCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	OrderIndex  int       `json:"orderIndex"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SnapshotTag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks snapshot shape before any destructive clear happens.
// Referenced category and tag ids must exist inside the snapshot itself,
// with the default category allowed implicitly since import recreates it.
func (s *Snapshot) Validate() error {
	if s.ExportVersion != SnapshotVersion {
		return ErrSnapshotVersion(s.ExportVersion)
	}
	categories := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		categories[c.ID] = true
	}
	categories[DefaultCategoryID] = true
	tags := make(map[string]bool, len(s.Tags))
	for _, t := range s.Tags {
		tags[t.ID] = true
	}
	for _, n := range s.Notes {
		if n.ID == "" {
			return ErrSnapshotNote(n.ID, "empty id")
		}
		if !categories[n.CategoryID] {
			return ErrSnapshotNote(n.ID, "unknown category "+n.CategoryID)
		}
		for _, tagID := range n.TagIDs {
			if !tags[tagID] {
				return ErrSnapshotNote(n.ID, "unknown tag "+tagID)
			}
		}
	}
	return nil
}

// ToNote converts the serialized form back to the domain entity.
func (s *SnapshotNote) ToNote() *Note {
	return &Note{
		ID:         s.ID,
		Title:      s.Title,
		Content:    s.Content,
		CategoryID: s.CategoryID,
		TagIDs:     append([]string(nil), s.TagIDs...),
		IsFavorite: s.IsFavorite,
		IsArchived: s.IsArchived,
		Color:      s.Color,
		Priority:   s.Priority,
		RemindAt:   s.RemindAt,
		Encrypted:  s.Encrypted,
		SyncStatus: s.SyncStatus,
		LastSynced: s.LastSynced,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (s *SnapshotCategory) ToCategory() *Category {
	return &Category{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		Icon:        s.Icon,
		OrderIndex:  s.OrderIndex,
		CreatedAt:   s.CreatedAt,
	}
}

func (s *SnapshotTag) ToTag() *Tag {
	return &Tag{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
	}
}

// FromNote builds the serialized form of a note.
func FromNote(n *Note) SnapshotNote {
	return SnapshotNote{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CategoryID: n.CategoryID,
		TagIDs:     append([]string(nil), n.TagIDs...),
		IsFavorite: n.IsFavorite,
		IsArchived: n.IsArchived,
		Color:      n.Color,
		Priority:   n.Priority,
		RemindAt:   n.RemindAt,
		Encrypted:  n.Encrypted,
		SyncStatus: n.SyncStatus,
		LastSynced: n.LastSynced,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func FromCategory(c *Category) SnapshotCategory {
	return SnapshotCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		OrderIndex:  c.OrderIndex,
		CreatedAt:   c.CreatedAt,
	}
}

func FromTag(t *Tag) SnapshotTag {
	return SnapshotTag{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}
