package schema

// BookInShelfTable represents the 'jbook.book_in_shelf' table.
// A (shelf, book) pair is deliberately not unique: the same book may appear
// on a shelf multiple times with different tag sets.
type BookInShelfTable struct {
	Table    string
	ID       string
	BookID   string
	ShelfUID string
}

// BookInShelf is the schema definition for jbook.book_in_shelf
var BookInShelf = BookInShelfTable{
	Table:    "jbook.book_in_shelf",
	ID:       "id",
	BookID:   "book_id",
	ShelfUID: "shelf_uid",
}
