package schema

// ShelfRateTable represents the 'jbook.shelf_rate' table.
// Unlike book_rate there is no rated_at column; the original data model
// never recorded shelf rating timestamps and clients do not expect one.
type ShelfRateTable struct {
	Table    string
	ID       string
	ShelfUID string
	UserUID  string
	Rate     string
}

// ShelfRate is the schema definition for jbook.shelf_rate
var ShelfRate = ShelfRateTable{
	Table:    "jbook.shelf_rate",
	ID:       "id",
	ShelfUID: "shelf_uid",
	UserUID:  "user_uid",
	Rate:     "rate",
}
