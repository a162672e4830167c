package schema

// UserTable represents the 'jbook.user' table
type UserTable struct {
	Table        string
	UID          string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	Surname      string
	CreatedAt    string
}

// User is the schema definition for jbook.user
var User = UserTable{
	Table:        "jbook.user",
	UID:          "uid",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	FirstName:    "first_name",
	Surname:      "surname",
	CreatedAt:    "created_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.UID, t.Username, t.Email, t.PasswordHash, t.FirstName, t.Surname, t.CreatedAt,
	}
}
