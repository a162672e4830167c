package schema

// BookRateTable represents the 'jbook.book_rate' table
type BookRateTable struct {
	Table   string
	ID      string
	BookID  string
	UserUID string
	Rate    string
	RatedAt string
}

// BookRate is the schema definition for jbook.book_rate
var BookRate = BookRateTable{
	Table:   "jbook.book_rate",
	ID:      "id",
	BookID:  "book_id",
	UserUID: "user_uid",
	Rate:    "rate",
	RatedAt: "rated_at",
}
