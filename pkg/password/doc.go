// Package password provides Argon2id password hashing and strength
// validation.
//
// Hashes are self-describing PHC strings carrying the algorithm
// parameters and salt, so parameter upgrades only affect new hashes:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
//
// Verify re-derives the key with the parameters embedded in the hash and
// compares in constant time:
//
//	hasher := password.New()
//	hash, err := hasher.Hash("S3cure-pass!")
//	ok, err := hasher.Verify(hash, "S3cure-pass!")
//
// ValidateStrength enforces the minimum complexity policy (length, case
// mix, digit, special character) before a password is ever hashed.
package password
