// Package modules contains self-contained features that contribute
// persistent classes.
//
// Each subdirectory is a module implementing `module.Module`. Modules are
// listed in `internal/app/modules.go`; at startup the application calls
// Register with the process-wide class registry and then Boot with the
// module's route group.
package modules
