package schema

// BookAuthorTable represents the 'jbook.book_author' table
type BookAuthorTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// BookAuthor is the schema definition for jbook.book_author
var BookAuthor = BookAuthorTable{
	Table: "jbook.book_author",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}
