package schema

// BookInShelfTagLinkTable represents the 'jbook._m2m_book_in_shelf_tag' junction
type BookInShelfTagLinkTable struct {
	Table            string
	BookInShelf      string
	BookInShelfTagID string
}

// BookInShelfTagLink is the schema definition for jbook._m2m_book_in_shelf_tag
var BookInShelfTagLink = BookInShelfTagLinkTable{
	Table:            "jbook._m2m_book_in_shelf_tag",
	BookInShelf:      "book_in_shelf",
	BookInShelfTagID: "book_in_shelf_tag_id",
}
