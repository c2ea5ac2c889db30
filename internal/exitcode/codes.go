// Package exitcode defines the stable, core-owned exit codes from spec.md §6.
// These are returned by the CLI layer; the core only ever attaches one of
// these codes to an error, it never calls os.Exit itself.
package exitcode

const (
	OK                   = 0
	InvalidInput         = 2
	FileOperationFailure = 3
	NotFound             = 4
	MissingDependency    = 5
	ValidationError      = 6
	LockTimeout          = 7
	ConfigError          = 8

	ParentNotFound     = 10
	MaxDepthExceeded   = 11
	MaxSiblings        = 12
	InvalidParentType  = 13

	ChecksumMismatch = 20
	SequenceDrift    = 22

	SessionExists      = 30
	SessionNotFound    = 31
	ScopeConflict      = 32
	ScopeInvalid       = 33
	TaskNotInScope     = 34
	TaskClaimed        = 35
	SessionRequired    = 36
	SessionCloseBlocked = 37
	FocusRequired      = 38

	ProtocolViolationLow  = 60
	ProtocolViolationHigh = 66

	LifecycleGateFailed = 75

	AlreadyInitialized = 101
	NoChange           = 102
)
