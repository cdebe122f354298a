// Package common provides shared constants, types, utilities, and interfaces
// used throughout SSHFS Manager.
//
// The package covers the cross-cutting concerns of the application:
//
//   - Constants: application metadata, file names and profile defaults
//   - Errors: sentinel errors checked with errors.Is across packages
//   - Interfaces: the notification and logging abstractions
//   - Logger: leveled logging to stdout and a rotating log file
//   - Utils: path helpers shared by the config, profile and mount packages
//
// # Usage
//
//	common.LogInfo("Mounting %s", profile.Host)
//
//	if errors.Is(err, common.ErrProfileNotFound) {
//	    // unknown reference
//	}
package common
