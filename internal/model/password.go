package model

// PasswordHasher hashes passwords with a slow salted one-way function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
