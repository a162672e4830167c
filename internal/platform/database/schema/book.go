package schema

// BookTable represents the 'jbook.book' table
type BookTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Annotation  string
	PubDate     string
	CreatedAt   string
	UpdatedAt   string
	PublisherID string
}

// Book is the schema definition for jbook.book
var Book = BookTable{
	Table:       "jbook.book",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Annotation:  "annotation",
	PubDate:     "pub_date",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
	PublisherID: "publisher_id",
}

func (t BookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Annotation, t.PubDate,
		t.CreatedAt, t.UpdatedAt, t.PublisherID,
	}
}
