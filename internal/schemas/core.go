package schemas

// User stores information about a registered account.
type User struct {
	// for DB storage, never changes. Not given to anyone except the owner
	Id string

	// public display name, unique
	Name string

	// hashed password
	Password string

	CreatedAt string
}
