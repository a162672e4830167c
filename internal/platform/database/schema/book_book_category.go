package schema

// BookBookCategoryTable represents the 'jbook._m2m_book_book_category' junction
type BookBookCategoryTable struct {
	Table      string
	BookID     string
	CategoryID string
}

// BookBookCategory is the schema definition for jbook._m2m_book_book_category
var BookBookCategory = BookBookCategoryTable{
	Table:      "jbook._m2m_book_book_category",
	BookID:     "book_id",
	CategoryID: "category_id",
}
