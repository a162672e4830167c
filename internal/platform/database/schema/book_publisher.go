package schema

// BookPublisherTable represents the 'jbook.book_publisher' table
type BookPublisherTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// BookPublisher is the schema definition for jbook.book_publisher
var BookPublisher = BookPublisherTable{
	Table: "jbook.book_publisher",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}
