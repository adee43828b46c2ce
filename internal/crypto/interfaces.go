package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns passwords into self-describing hashes and checks
// passwords against them. It knows nothing about users or storage.
//
// Hashes are PHC strings:
//
//	$argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>
//
// so parameters can change without invalidating stored hashes.
type PasswordHasher interface {
	// Hash derives a hash of password under a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash. The comparison is
	// constant-time. A malformed hash is an error, a wrong password is not.
	Verify(password, encodedHash string) (bool, error)
}
