package schema

// BookImageTable represents the 'jbook.book_image' table
type BookImageTable struct {
	Table   string
	ID      string
	Src     string
	BookID  string
	AltText string
	IsMain  string
}

// BookImage is the schema definition for jbook.book_image
var BookImage = BookImageTable{
	Table:   "jbook.book_image",
	ID:      "id",
	Src:     "src",
	BookID:  "book_id",
	AltText: "alt_text",
	IsMain:  "is_main",
}
