// Package profile provides the connection profile store for SSHFS Manager.
//
// A Profile names a remote endpoint (host, user, remote directory) that can
// be mounted locally. The Store keeps the ordered list of profiles in memory
// and rewrites its TOML backing file after every mutation:
//
//	[[connections]]
//	host = 'db1'
//	user = 'root'
//	remote_dir = '/root/'
//
// # Identity
//
// Each profile gets an in-memory ID when it is added or loaded. IDs are not
// persisted; they only let the front ends target one entry when several
// profiles share a host.
//
// # Blank hosts
//
// Add and Edit treat a blank host as a cancelled dialog: nothing is changed
// or written and no error is returned.
//
// # Thread Safety
//
// A Store is meant to be driven from a single goroutine and does no locking.
package profile
