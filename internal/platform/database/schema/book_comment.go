package schema

// BookCommentTable represents the 'jbook.book_comment' table
type BookCommentTable struct {
	Table   string
	ID      string
	BookID  string
	UserUID string
	PubDate string
	Content string
}

// BookComment is the schema definition for jbook.book_comment
var BookComment = BookCommentTable{
	Table:   "jbook.book_comment",
	ID:      "id",
	BookID:  "book_id",
	UserUID: "user_uid",
	PubDate: "pub_date",
	Content: "content",
}
