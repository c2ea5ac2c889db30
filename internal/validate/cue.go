package validate

import (
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/bytedance/sonic"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/schema"
	"github.com/taskwarden/warden/internal/store"
)

// structuralValidator compiles and caches the embedded CUE schemas,
// mirroring the jmgilman-sow CUE validation singleton but operating on
// already-decoded Go values instead of files on disk.
type structuralValidator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
	mu      sync.RWMutex
}

var (
	globalStructural *structuralValidator
	structuralOnce   sync.Once
)

func getStructuralValidator() *structuralValidator {
	structuralOnce.Do(func() {
		globalStructural = &structuralValidator{
			ctx:     cuecontext.New(),
			schemas: make(map[string]cue.Value),
		}
	})
	return globalStructural
}

var definitionNames = map[string]string{
	"task":     "#Task",
	"phase":    "#ProjectState",
	"session":  "#Session",
	"config":   "#Config",
	"archive":  "#ArchiveStore",
	"manifest": "#LifecycleManifest",
}

func (v *structuralValidator) schemaValue(schemaType string) (cue.Value, error) {
	v.mu.RLock()
	if sv, ok := v.schemas[schemaType]; ok {
		v.mu.RUnlock()
		return sv, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	if sv, ok := v.schemas[schemaType]; ok {
		return sv, nil
	}

	src := schema.GetSchema(schemaType)
	if src == "" {
		return cue.Value{}, fmt.Errorf("unknown schema type: %s", schemaType)
	}

	compiled := v.ctx.CompileString(src)
	if compiled.Err() != nil {
		return cue.Value{}, fmt.Errorf("failed to compile schema %s: %w", schemaType, compiled.Err())
	}

	defName, ok := definitionNames[schemaType]
	if !ok {
		return cue.Value{}, fmt.Errorf("unknown schema type: %s", schemaType)
	}

	def := compiled.LookupPath(cue.ParsePath(defName))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("failed to find definition %s in schema %s: %w", defName, schemaType, def.Err())
	}

	v.schemas[schemaType] = def
	return def, nil
}

// Structural unifies an already-decoded Go value (typically the result of
// sonic.Unmarshal into a map[string]any) against the named embedded schema.
func (v *structuralValidator) Structural(schemaType string, data any) error {
	schemaVal, err := v.schemaValue(schemaType)
	if err != nil {
		return model.ErrResource("schema_load_failed", exitcode.FileOperationFailure, false, "%v", err)
	}

	dataVal := v.ctx.Encode(data)
	if dataVal.Err() != nil {
		return model.ErrResource("schema_encode_failed", exitcode.FileOperationFailure, false, "%v", dataVal.Err())
	}

	unified := schemaVal.Unify(dataVal)
	if unified.Err() != nil {
		return formatSchemaError(schemaType, unified.Err())
	}

	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatSchemaError(schemaType, err)
	}

	return nil
}

func formatSchemaError(schemaType string, err error) error {
	var msgs []string
	for _, e := range errors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	detail := strings.Join(msgs, "; ")
	if detail == "" {
		detail = err.Error()
	}
	return model.ErrInvariant("schema_validation_failed", exitcode.ValidationError,
		"%s failed schema validation: %s", schemaType, detail)
}

// Task validates a single task's JSON-decoded form against the task schema.
func Task(data any) error { return getStructuralValidator().Structural("task", data) }

// Phase validates the project-state JSON-decoded form against the phase schema.
func Phase(data any) error { return getStructuralValidator().Structural("phase", data) }

// Session validates a session record against the session schema.
func Session(data any) error { return getStructuralValidator().Structural("session", data) }

// Config validates a decoded config overlay against the config schema.
func Config(data any) error { return getStructuralValidator().Structural("config", data) }

// Archive validates an archive store against the archive schema.
func Archive(data any) error { return getStructuralValidator().Structural("archive", data) }

// Manifest validates a per-epic lifecycle manifest against the manifest schema.
func Manifest(data any) error { return getStructuralValidator().Structural("manifest", data) }

// StoreValidator returns a store.Validator that round-trips v through JSON
// and unifies it against the named embedded schema, for plugging into
// store.SaveOptions.Validate without store importing this package.
func StoreValidator(schemaType string) store.Validator {
	return func(v any) error {
		raw, err := sonic.Marshal(v)
		if err != nil {
			return model.ErrResource("schema_encode_failed", exitcode.FileOperationFailure, false, "%v", err)
		}
		var decoded any
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			return model.ErrResource("schema_decode_failed", exitcode.FileOperationFailure, false, "%v", err)
		}
		return getStructuralValidator().Structural(schemaType, decoded)
	}
}
