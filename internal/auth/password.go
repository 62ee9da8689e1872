package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword возвращает bcrypt-хэш (алгоритм и соль внутри строки).
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword сравнивает пароль с хэшем. Битый хэш — просто false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
