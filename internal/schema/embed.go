package schema

import _ "embed"

// Embedded CUE schemas
// These are compiled into the binary at build time using go:embed directives

//go:embed cue/task.cue
var taskCUE string

//go:embed cue/phase.cue
var phaseCUE string

//go:embed cue/session.cue
var sessionCUE string

//go:embed cue/config.cue
var configCUE string

//go:embed cue/archive.cue
var archiveCUE string

//go:embed cue/manifest.cue
var manifestCUE string

// GetSchema returns the embedded schema for the given type
func GetSchema(schemaType string) string {
	switch schemaType {
	case "task":
		return taskCUE
	case "phase":
		return phaseCUE
	case "session":
		return sessionCUE
	case "config":
		return configCUE
	case "archive":
		return archiveCUE
	case "manifest":
		return manifestCUE
	default:
		return ""
	}
}

// ListSchemas returns all available schema types
func ListSchemas() []string {
	return []string{
		"task",
		"phase",
		"session",
		"config",
		"archive",
		"manifest",
	}
}
