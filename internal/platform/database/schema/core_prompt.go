package schema

// PromptTable represents the 'prompt' table
type PromptTable struct {
	Table           string
	ID              string
	Title           string
	Description     string
	Body            string
	Type            string
	Platform        string
	ModelHint       string
	Language        string
	UseCase         string
	ClientOrProject string
	Status          string
	IsFavorite      string
	Version         string
	Changelog       string
	Notes           string
	UsageCount      string
	LastUsedAt      string
	CategoryID      string
	CreatedAt       string
	UpdatedAt       string
}

// Prompt is the schema definition for prompt
var Prompt = PromptTable{
	Table:           "prompt",
	ID:              "id",
	Title:           "title",
	Description:     "description",
	Body:            "body",
	Type:            "type",
	Platform:        "platform",
	ModelHint:       "modelhint",
	Language:        "language",
	UseCase:         "usecase",
	ClientOrProject: "clientorproject",
	Status:          "status",
	IsFavorite:      "isfavorite",
	Version:         "version",
	Changelog:       "changelog",
	Notes:           "notes",
	UsageCount:      "usagecount",
	LastUsedAt:      "lastusedat",
	CategoryID:      "categoryid",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

func (t PromptTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Body, t.Type, t.Platform, t.ModelHint,
		t.Language, t.UseCase, t.ClientOrProject, t.Status, t.IsFavorite, t.Version,
		t.Changelog, t.Notes, t.UsageCount, t.LastUsedAt, t.CategoryID,
		t.CreatedAt, t.UpdatedAt,
	}
}
