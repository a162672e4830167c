package schema

// BookBookTagTable represents the 'jbook._m2m_book_book_tag' junction.
// The tag side references book_tag.name directly (tags have no surrogate id).
type BookBookTagTable struct {
	Table   string
	BookID  string
	BookTag string
}

// BookBookTag is the schema definition for jbook._m2m_book_book_tag
var BookBookTag = BookBookTagTable{
	Table:   "jbook._m2m_book_book_tag",
	BookID:  "book_id",
	BookTag: "book_tag",
}
