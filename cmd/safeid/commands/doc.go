// Package commands defines the safeid CLI.
//
// Commands
//
//   - generate   Create an anonymous MPID record and seal it under a passphrase
//   - show       Print the record's address and correlation name
//   - export     Write the record's wire encoding
//   - serve      Run a record peer over QUIC
//   - publish    Send the local record to a peer
//   - fetch      Retrieve a record from a peer by name
//
// The root command loads configuration (file, then SAFEID_* environment,
// then flags) and configures logging before any subcommand runs.
package commands
