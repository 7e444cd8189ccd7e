package schema

// CategoryTable represents the 'category' table
type CategoryTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	ParentID  string
	SortOrder string
	CreatedAt string
	UpdatedAt string
}

// Category is the schema definition for category
var Category = CategoryTable{
	Table:     "category",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	ParentID:  "parentid",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.ParentID, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
