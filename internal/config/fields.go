package config

import (
	"fmt"
	"strconv"
	"strings"
)

// field describes one addressable config option: its dot path (as named in
// spec.md §4.1), its WARDEN_-prefixed env var suffix, and how to read it off
// a resolved Config / write it into an Overlay. Kept as an explicit table
// rather than reflection, the way libs/config/defaults.go touches each
// field by name.
type field struct {
	path string
	env  string
	get  func(Config) string
	set  func(*Overlay, string) error
}

func ptrBool(v *bool, s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("expected bool, got %q", s)
	}
	*v = b
	return nil
}

func fields() []field {
	return []field{
		{
			path: "output.defaultFormat", env: "OUTPUT_DEFAULT_FORMAT",
			get: func(c Config) string { return c.Output.DefaultFormat },
			set: func(o *Overlay, s string) error {
				if s != "text" && s != "json" {
					return fmt.Errorf("output.defaultFormat must be text or json, got %q", s)
				}
				o.ensureOutput().DefaultFormat = &s
				return nil
			},
		},
		{
			path: "output.showColor", env: "OUTPUT_SHOW_COLOR",
			get: func(c Config) string { return strconv.FormatBool(c.Output.ShowColor) },
			set: func(o *Overlay, s string) error {
				b, err := strconv.ParseBool(s)
				if err != nil {
					return err
				}
				o.ensureOutput().ShowColor = &b
				return nil
			},
		},
		{
			path: "output.showUnicode", env: "OUTPUT_SHOW_UNICODE",
			get: func(c Config) string { return strconv.FormatBool(c.Output.ShowUnicode) },
			set: func(o *Overlay, s string) error {
				b, err := strconv.ParseBool(s)
				if err != nil {
					return err
				}
				o.ensureOutput().ShowUnicode = &b
				return nil
			},
		},
		{
			path: "archive.enabled", env: "ARCHIVE_ENABLED",
			get: func(c Config) string { return strconv.FormatBool(c.Archive.Enabled) },
			set: func(o *Overlay, s string) error {
				b, err := strconv.ParseBool(s)
				if err != nil {
					return err
				}
				o.ensureArchive().Enabled = &b
				return nil
			},
		},
		{
			path: "archive.daysUntilArchive", env: "ARCHIVE_DAYS_UNTIL_ARCHIVE",
			get: func(c Config) string { return strconv.Itoa(c.Archive.DaysUntilArchive) },
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				o.ensureArchive().DaysUntilArchive = &n
				return nil
			},
		},
		{
			path: "archive.maxCompletedTasks", env: "ARCHIVE_MAX_COMPLETED_TASKS",
			get: func(c Config) string { return strconv.Itoa(c.Archive.MaxCompletedTasks) },
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				o.ensureArchive().MaxCompletedTasks = &n
				return nil
			},
		},
		{
			path: "archive.preserveRecentCount", env: "ARCHIVE_PRESERVE_RECENT_COUNT",
			get: func(c Config) string { return strconv.Itoa(c.Archive.PreserveRecentCount) },
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				o.ensureArchive().PreserveRecentCount = &n
				return nil
			},
		},
		{
			path: "archive.archiveOnSessionEnd", env: "ARCHIVE_ARCHIVE_ON_SESSION_END",
			get: func(c Config) string { return strconv.FormatBool(c.Archive.ArchiveOnSessionEnd) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureArchive().ArchiveOnSessionEnd, s) },
		},
		{
			path: "archive.autoArchiveOnComplete", env: "ARCHIVE_AUTO_ARCHIVE_ON_COMPLETE",
			get: func(c Config) string { return strconv.FormatBool(c.Archive.AutoArchiveOnComplete) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureArchive().AutoArchiveOnComplete, s) },
		},
		{
			path: "validation.strictMode", env: "VALIDATION_STRICT_MODE",
			get: func(c Config) string { return strconv.FormatBool(c.Validation.StrictMode) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureValidation().StrictMode, s) },
		},
		{
			path: "validation.checksumEnabled", env: "VALIDATION_CHECKSUM_ENABLED",
			get: func(c Config) string { return strconv.FormatBool(c.Validation.ChecksumEnabled) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureValidation().ChecksumEnabled, s) },
		},
		{
			path: "validation.maxActiveTasks", env: "VALIDATION_MAX_ACTIVE_TASKS",
			get: func(c Config) string { return strconv.Itoa(c.Validation.MaxActiveTasks) },
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				o.ensureValidation().MaxActiveTasks = &n
				return nil
			},
		},
		{
			path: "validation.phaseValidation.phaseAdvanceThreshold", env: "VALIDATION_PHASE_ADVANCE_THRESHOLD",
			get: func(c Config) string {
				return strconv.Itoa(c.Validation.PhaseValidation.PhaseAdvanceThreshold)
			},
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				if n < 0 || n > 100 {
					return fmt.Errorf("phaseAdvanceThreshold must be 0-100, got %d", n)
				}
				o.ensurePhaseValidation().PhaseAdvanceThreshold = &n
				return nil
			},
		},
		{
			path: "validation.phaseValidation.blockOnCriticalTasks", env: "VALIDATION_BLOCK_ON_CRITICAL_TASKS",
			get: func(c Config) string {
				return strconv.FormatBool(c.Validation.PhaseValidation.BlockOnCriticalTasks)
			},
			set: func(o *Overlay, s string) error {
				return ptrBool2(&o.ensurePhaseValidation().BlockOnCriticalTasks, s)
			},
		},
		{
			path: "session.requireSessionNote", env: "SESSION_REQUIRE_SESSION_NOTE",
			get: func(c Config) string { return strconv.FormatBool(c.Session.RequireSessionNote) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureSession().RequireSessionNote, s) },
		},
		{
			path: "session.autoStartSession", env: "SESSION_AUTO_START_SESSION",
			get: func(c Config) string { return strconv.FormatBool(c.Session.AutoStartSession) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureSession().AutoStartSession, s) },
		},
		{
			path: "multiSession.enabled", env: "MULTI_SESSION_ENABLED",
			get: func(c Config) string { return strconv.FormatBool(c.MultiSession.Enabled) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureMultiSession().Enabled, s) },
		},
		{
			path: "multiSession.maxConcurrentSessions", env: "MULTI_SESSION_MAX_CONCURRENT_SESSIONS",
			get: func(c Config) string { return strconv.Itoa(c.MultiSession.MaxConcurrentSessions) },
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				o.ensureMultiSession().MaxConcurrentSessions = &n
				return nil
			},
		},
		{
			path: "multiSession.allowScopeOverlap", env: "MULTI_SESSION_ALLOW_SCOPE_OVERLAP",
			get: func(c Config) string { return strconv.FormatBool(c.MultiSession.AllowScopeOverlap) },
			set: func(o *Overlay, s string) error { return ptrBool2(&o.ensureMultiSession().AllowScopeOverlap, s) },
		},
		{
			path: "analyze.hierarchyWeight.parentChild", env: "ANALYZE_HIERARCHY_WEIGHT_PARENT_CHILD",
			get: func(c Config) string { return strconv.FormatFloat(c.Analyze.HierarchyWeight.ParentChild, 'g', -1, 64) },
			set: func(o *Overlay, s string) error {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				o.ensureHierarchyWeight().ParentChild = &f
				return nil
			},
		},
		{
			path: "analyze.hierarchyWeight.crossEpic", env: "ANALYZE_HIERARCHY_WEIGHT_CROSS_EPIC",
			get: func(c Config) string { return strconv.FormatFloat(c.Analyze.HierarchyWeight.CrossEpic, 'g', -1, 64) },
			set: func(o *Overlay, s string) error {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				o.ensureHierarchyWeight().CrossEpic = &f
				return nil
			},
		},
		{
			path: "analyze.hierarchyWeight.crossPhase", env: "ANALYZE_HIERARCHY_WEIGHT_CROSS_PHASE",
			get: func(c Config) string { return strconv.FormatFloat(c.Analyze.HierarchyWeight.CrossPhase, 'g', -1, 64) },
			set: func(o *Overlay, s string) error {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				o.ensureHierarchyWeight().CrossPhase = &f
				return nil
			},
		},
		{
			path: "backups.maxBackups", env: "BACKUPS_MAX_BACKUPS",
			get: func(c Config) string { return strconv.Itoa(c.Backups.MaxBackups) },
			set: func(o *Overlay, s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return err
				}
				o.ensureBackups().MaxBackups = &n
				return nil
			},
		},
		{
			path: "defaults.priority", env: "DEFAULTS_PRIORITY",
			get: func(c Config) string { return c.Defaults.Priority },
			set: func(o *Overlay, s string) error {
				o.ensureDefaults().Priority = &s
				return nil
			},
		},
		{
			path: "defaults.phase", env: "DEFAULTS_PHASE",
			get: func(c Config) string { return c.Defaults.Phase },
			set: func(o *Overlay, s string) error {
				o.ensureDefaults().Phase = &s
				return nil
			},
		},
		{
			path: "defaults.labels", env: "DEFAULTS_LABELS",
			get: func(c Config) string { return strings.Join(c.Defaults.Labels, ",") },
			set: func(o *Overlay, s string) error {
				o.ensureDefaults().Labels = splitNonEmpty(s, ",")
				return nil
			},
		},
		{
			path: "lifecycleEnforcement.mode", env: "LIFECYCLE_ENFORCEMENT_MODE",
			get: func(c Config) string { return string(c.LifecycleEnforcement.Mode) },
			set: func(o *Overlay, s string) error {
				switch s {
				case string(LifecycleStrict), string(LifecycleAdvisory), string(LifecycleOff):
				default:
					return fmt.Errorf("lifecycleEnforcement.mode must be strict, advisory, or off, got %q", s)
				}
				o.ensureLifecycle().Mode = &s
				return nil
			},
		},
	}
}

func ptrBool2(dst **bool, s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = &b
	return nil
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fieldByPath(path string) (field, bool) {
	for _, f := range fields() {
		if f.path == path {
			return f, true
		}
	}
	return field{}, false
}

func (o *Overlay) ensureOutput() *OutputOverlay {
	if o.Output == nil {
		o.Output = &OutputOverlay{}
	}
	return o.Output
}

func (o *Overlay) ensureArchive() *ArchiveOverlay {
	if o.Archive == nil {
		o.Archive = &ArchiveOverlay{}
	}
	return o.Archive
}

func (o *Overlay) ensureValidation() *ValidationOverlay {
	if o.Validation == nil {
		o.Validation = &ValidationOverlay{}
	}
	return o.Validation
}

func (o *Overlay) ensurePhaseValidation() *PhaseValidationOverlay {
	v := o.ensureValidation()
	if v.PhaseValidation == nil {
		v.PhaseValidation = &PhaseValidationOverlay{}
	}
	return v.PhaseValidation
}

func (o *Overlay) ensureSession() *SessionOverlay {
	if o.Session == nil {
		o.Session = &SessionOverlay{}
	}
	return o.Session
}

func (o *Overlay) ensureMultiSession() *MultiSessionOverlay {
	if o.MultiSession == nil {
		o.MultiSession = &MultiSessionOverlay{}
	}
	return o.MultiSession
}

func (o *Overlay) ensureAnalyze() *AnalyzeOverlay {
	if o.Analyze == nil {
		o.Analyze = &AnalyzeOverlay{}
	}
	return o.Analyze
}

func (o *Overlay) ensureHierarchyWeight() *HierarchyWeightOverlay {
	a := o.ensureAnalyze()
	if a.HierarchyWeight == nil {
		a.HierarchyWeight = &HierarchyWeightOverlay{}
	}
	return a.HierarchyWeight
}

func (o *Overlay) ensureBackups() *BackupsOverlay {
	if o.Backups == nil {
		o.Backups = &BackupsOverlay{}
	}
	return o.Backups
}

func (o *Overlay) ensureDefaults() *DefaultsOverlay {
	if o.Defaults == nil {
		o.Defaults = &DefaultsOverlay{}
	}
	return o.Defaults
}

func (o *Overlay) ensureLifecycle() *LifecycleOverlay {
	if o.LifecycleEnforcement == nil {
		o.LifecycleEnforcement = &LifecycleOverlay{}
	}
	return o.LifecycleEnforcement
}
