// Package mount turns a connection profile into a local sshfs mount.
//
// A Mounter owns two settings: the external tool to run and the root
// directory that holds one mount point per host. Mounting a profile
//
//  1. computes <root>/<host>/,
//  2. creates that directory (and its parents) if needed,
//  3. runs <tool> <user>@<host>:<remote_dir> <mount-point>,
//  4. reports success, or a MountError carrying the exact command line
//     and the tool's error output.
//
// The command runs attached to the caller's terminal so the tool can prompt
// for a password. Nothing is checked before or after the command and mount
// state is never recorded; the OS mount table is the only source of truth.
package mount
