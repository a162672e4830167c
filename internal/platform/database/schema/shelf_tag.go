package schema

// ShelfTagTable represents the 'jbook.shelf_tag' table
type ShelfTagTable struct {
	Table string
	Name  string
}

// ShelfTag is the schema definition for jbook.shelf_tag
var ShelfTag = ShelfTagTable{
	Table: "jbook.shelf_tag",
	Name:  "name",
}
