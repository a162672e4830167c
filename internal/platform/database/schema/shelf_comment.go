package schema

// ShelfCommentTable represents the 'jbook.shelf_comment' table
type ShelfCommentTable struct {
	Table    string
	ID       string
	ShelfUID string
	UserUID  string
	PubDate  string
	Content  string
}

// ShelfComment is the schema definition for jbook.shelf_comment
var ShelfComment = ShelfCommentTable{
	Table:    "jbook.shelf_comment",
	ID:       "id",
	ShelfUID: "shelf_uid",
	UserUID:  "user_uid",
	PubDate:  "pub_date",
	Content:  "content",
}
