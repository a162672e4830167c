package schema

// ShelfShelfTagTable represents the 'jbook._m2m_shelf_shelf_tag' junction.
// The tag side references shelf_tag.name directly.
type ShelfShelfTagTable struct {
	Table    string
	ShelfUID string
	ShelfTag string
}

// ShelfShelfTag is the schema definition for jbook._m2m_shelf_shelf_tag
var ShelfShelfTag = ShelfShelfTagTable{
	Table:    "jbook._m2m_shelf_shelf_tag",
	ShelfUID: "shelf_uid",
	ShelfTag: "shelf_tag",
}
