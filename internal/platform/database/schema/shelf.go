package schema

// ShelfTable represents the 'jbook.shelf' table
type ShelfTable struct {
	Table       string
	UID         string
	Name        string
	Description string
	Type        string
	AvatarID    string
	UserUID     string
	CreatedAt   string
	UpdatedAt   string
}

// Shelf is the schema definition for jbook.shelf
var Shelf = ShelfTable{
	Table:       "jbook.shelf",
	UID:         "uid",
	Name:        "name",
	Description: "description",
	Type:        "type",
	AvatarID:    "avatar_id",
	UserUID:     "user_uid",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ShelfTable) Columns() []string {
	return []string{
		t.UID, t.Name, t.Description, t.Type, t.AvatarID,
		t.UserUID, t.CreatedAt, t.UpdatedAt,
	}
}
