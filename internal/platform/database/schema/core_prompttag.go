package schema

// PromptTagTable represents the 'prompttag' join table
type PromptTagTable struct {
	Table    string
	PromptID string
	TagID    string
}

// PromptTag is the schema definition for prompttag
var PromptTag = PromptTagTable{
	Table:    "prompttag",
	PromptID: "promptid",
	TagID:    "tagid",
}

func (t PromptTagTable) Columns() []string {
	return []string{t.PromptID, t.TagID}
}
