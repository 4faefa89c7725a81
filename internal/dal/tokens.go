package dal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/plazahq/plaza/internal/crypto"
	"github.com/plazahq/plaza/internal/schemas"
)

var ErrTokenNotFound = errors.New("token not found")

// CreateToken issues a fresh bearer token for a user. A user can hold
// several live tokens (one per device).
func CreateToken(db *sql.DB, userID string) (string, error) {
	token := crypto.GenerateToken()
	if _, err := db.Exec("INSERT INTO tokens (token, user_id) VALUES (?, ?)", token, userID); err != nil {
		return "", fmt.Errorf("error inserting token: %w", err)
	}
	return token, nil
}

// GetUserByToken resolves a bearer token to its user.
func GetUserByToken(db *sql.DB, token string) (*schemas.User, error) {
	var user schemas.User

	query := `SELECT u.id, u.username, u.password, u.created_at
		FROM tokens t JOIN users u ON u.id = t.user_id
		WHERE t.token = ?`
	err := db.QueryRow(query, token).Scan(&user.Id, &user.Name, &user.Password, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error querying token: %w", err)
	}
	return &user, nil
}

// DeleteToken revokes one token.
func DeleteToken(db *sql.DB, token string) error {
	if _, err := db.Exec("DELETE FROM tokens WHERE token = ?", token); err != nil {
		return fmt.Errorf("error deleting token: %w", err)
	}
	return nil
}
