// Package record implements the anonymous MPID identity record and its
// canonical CBOR encoding.
//
// An AnMpid pairs an Ed25519 signing key pair and a Curve25519 encryption key
// pair with a caller-supplied correlation name. Its network address is
// derived from the two public keys alone (see name.Derive), so any party can
// verify that a record lives under the name it claims.
//
// Wire format:
//
//	tag(5483001) [
//	  signing public     bstr(32),
//	  encryption public  bstr(32),
//	  signing secret     bstr(64),
//	  encryption secret  bstr(32),
//	  [ name bstr(64) ],
//	]
//
// Changing the field order or the tag breaks compatibility.
package record
