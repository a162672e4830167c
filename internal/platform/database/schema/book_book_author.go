package schema

// BookBookAuthorTable represents the 'jbook._m2m_book_book_author' junction
type BookBookAuthorTable struct {
	Table        string
	BookID       string
	BookAuthorID string
}

// BookBookAuthor is the schema definition for jbook._m2m_book_book_author
var BookBookAuthor = BookBookAuthorTable{
	Table:        "jbook._m2m_book_book_author",
	BookID:       "book_id",
	BookAuthorID: "book_author_id",
}
