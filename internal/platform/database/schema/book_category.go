package schema

// BookCategoryTable represents the 'jbook.book_category' table
type BookCategoryTable struct {
	Table      string
	ID         string
	Name       string
	Slug       string
	Popularity string
}

// BookCategory is the schema definition for jbook.book_category
var BookCategory = BookCategoryTable{
	Table:      "jbook.book_category",
	ID:         "id",
	Name:       "name",
	Slug:       "slug",
	Popularity: "popularity",
}
