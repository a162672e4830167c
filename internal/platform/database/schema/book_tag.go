package schema

// BookTagTable represents the 'jbook.book_tag' table
type BookTagTable struct {
	Table string
	Name  string
}

// BookTag is the schema definition for jbook.book_tag
var BookTag = BookTagTable{
	Table: "jbook.book_tag",
	Name:  "name",
}
