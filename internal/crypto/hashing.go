package crypto

import "golang.org/x/crypto/bcrypt"

// CheckPasswordHash reports whether plaintext matches the stored bcrypt hash.
func CheckPasswordHash(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

func HashPassword(plaintext string) (hashedPassword string, err error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	return string(hashed), err
}
