package schema

// BookInShelfTagTable represents the 'jbook.book_in_shelf_tag' table
type BookInShelfTagTable struct {
	Table string
	ID    string
	Name  string
}

// BookInShelfTag is the schema definition for jbook.book_in_shelf_tag
var BookInShelfTag = BookInShelfTagTable{
	Table: "jbook.book_in_shelf_tag",
	ID:    "id",
	Name:  "name",
}
