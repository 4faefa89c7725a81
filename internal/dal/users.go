// package dal is the data access layer. It contains functions that perform
// SQL queries and logic that cannot be decoupled from the queries. Files
// correspond to SQL tables
package dal

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/plazahq/plaza/internal/schemas"
)

// CreateUser adds a user row and returns its generated id.
func CreateUser(db *sql.DB, username, hashedPassword string) (*schemas.User, error) {
	user := schemas.User{
		Id:       uuid.New().String(),
		Name:     username,
		Password: hashedPassword,
	}
	_, err := db.Exec(
		"INSERT INTO users (id, username, password) VALUES (?, ?, ?)",
		user.Id, user.Name, user.Password,
	)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return &user, nil
}

func GetUserByUsername(db *sql.DB, username string) (*schemas.User, error) {
	var user schemas.User

	query := "SELECT id, username, password, created_at FROM users WHERE username = ?"
	err := db.QueryRow(query, username).Scan(&user.Id, &user.Name, &user.Password, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", username)
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &user, nil
}

func CountUsers(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return n, nil
}
