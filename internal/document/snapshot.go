package document

// Snapshot is a plain copy of a document's state, used for reports.
type Snapshot struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Count int            `json:"count"`
	Flags []string       `json:"flags"`
	Items []ItemSnapshot `json:"items"`
	Tags  []string       `json:"tags"`
}

// ItemSnapshot is a plain copy of an item.
type ItemSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Moved   int    `json:"moved"`
}

// Snapshot copies the current state of d.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		ID:    d.id.String(),
		Title: d.title,
		Count: d.count,
		Flags: d.flags.Names(),
		Tags:  d.Tags(),
	}
	if s.Flags == nil {
		s.Flags = []string{}
	}
	s.Items = []ItemSnapshot{}
	if d.items != nil {
		for _, item := range d.items.Items() {
			s.Items = append(s.Items, ItemSnapshot{
				ID:      item.ID.String(),
				Name:    item.Name(),
				Added:   item.Added,
				Removed: item.Removed,
				Moved:   item.Moved,
			})
		}
	}
	return s
}
