// Package safeid provides self-certifying identity records for a
// peer-addressed content-distribution network, and a small peer that stores
// and serves them.
//
// Records (see package record) derive their network name from their public
// keys, so a receiving peer can check that a record really lives under the
// name it was announced with. Routing code only sees records through the
// Sendable capability; the Peer moves Sendables over QUIC.
package safeid
