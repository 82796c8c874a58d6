package hash

// Hasher defines methods for hashing and verifying secrets.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}
