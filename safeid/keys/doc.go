// Package keys defines the fixed-size key material carried by identity records.
//
// Every key role has its own array type so that signing and encryption keys
// cannot be swapped at a call site:
//   - SigningPublicKey / SigningSecretKey: Ed25519
//   - EncryptionPublicKey / EncryptionSecretKey: Curve25519 (NaCl box)
//
// Conversions from variable-length input never pad or truncate; a length
// mismatch is reported as a *SizeMismatchError.
package keys
