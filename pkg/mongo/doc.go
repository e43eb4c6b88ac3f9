// Package mongo provides the MongoDB connectivity helpers backing the
// document-store flavor of the trial ledger: a retrying Connect, a
// database handle shortcut, and a healthcheck probe.
//
// Configuration comes from environment variables through pkg/config.
package mongo
