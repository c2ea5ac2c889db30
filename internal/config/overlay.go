package config

// Overlay is a partial configuration: every field is a pointer, unset
// meaning "not specified at this layer". It's the shape of config.json (both
// project and global scope) and of the CLI-flag/env-var layers before they
// are merged onto Defaults().
//
// Field-by-field, not reflection: mirrors libs/config/defaults.go's
// ApplyDefaults, generalized from one optional section to the full option
// set in spec.md §4.1.
type Overlay struct {
	Output               *OutputOverlay         `json:"output,omitempty"`
	Archive              *ArchiveOverlay        `json:"archive,omitempty"`
	Validation           *ValidationOverlay     `json:"validation,omitempty"`
	Session              *SessionOverlay        `json:"session,omitempty"`
	MultiSession         *MultiSessionOverlay   `json:"multiSession,omitempty"`
	Analyze              *AnalyzeOverlay        `json:"analyze,omitempty"`
	Backups              *BackupsOverlay        `json:"backups,omitempty"`
	Defaults             *DefaultsOverlay       `json:"defaults,omitempty"`
	LifecycleEnforcement *LifecycleOverlay      `json:"lifecycleEnforcement,omitempty"`
}

type OutputOverlay struct {
	DefaultFormat *string `json:"defaultFormat,omitempty"`
	ShowColor     *bool   `json:"showColor,omitempty"`
	ShowUnicode   *bool   `json:"showUnicode,omitempty"`
}

type ArchiveOverlay struct {
	Enabled               *bool `json:"enabled,omitempty"`
	DaysUntilArchive      *int  `json:"daysUntilArchive,omitempty"`
	MaxCompletedTasks     *int  `json:"maxCompletedTasks,omitempty"`
	PreserveRecentCount   *int  `json:"preserveRecentCount,omitempty"`
	ArchiveOnSessionEnd   *bool `json:"archiveOnSessionEnd,omitempty"`
	AutoArchiveOnComplete *bool `json:"autoArchiveOnComplete,omitempty"`
}

type PhaseValidationOverlay struct {
	PhaseAdvanceThreshold *int  `json:"phaseAdvanceThreshold,omitempty"`
	BlockOnCriticalTasks  *bool `json:"blockOnCriticalTasks,omitempty"`
}

type ValidationOverlay struct {
	StrictMode      *bool                   `json:"strictMode,omitempty"`
	ChecksumEnabled *bool                   `json:"checksumEnabled,omitempty"`
	MaxActiveTasks  *int                    `json:"maxActiveTasks,omitempty"`
	PhaseValidation *PhaseValidationOverlay `json:"phaseValidation,omitempty"`
}

type SessionOverlay struct {
	RequireSessionNote *bool `json:"requireSessionNote,omitempty"`
	AutoStartSession   *bool `json:"autoStartSession,omitempty"`
}

type MultiSessionOverlay struct {
	Enabled               *bool `json:"enabled,omitempty"`
	MaxConcurrentSessions *int  `json:"maxConcurrentSessions,omitempty"`
	AllowScopeOverlap     *bool `json:"allowScopeOverlap,omitempty"`
}

type HierarchyWeightOverlay struct {
	ParentChild *float64 `json:"parentChild,omitempty"`
	CrossEpic   *float64 `json:"crossEpic,omitempty"`
	CrossPhase  *float64 `json:"crossPhase,omitempty"`
}

type AnalyzeOverlay struct {
	HierarchyWeight *HierarchyWeightOverlay `json:"hierarchyWeight,omitempty"`
}

type BackupsOverlay struct {
	MaxBackups *int `json:"maxBackups,omitempty"`
}

type DefaultsOverlay struct {
	Priority *string  `json:"priority,omitempty"`
	Phase    *string  `json:"phase,omitempty"`
	Labels   []string `json:"labels,omitempty"`
}

type LifecycleOverlay struct {
	Mode *string `json:"mode,omitempty"`
}

// Apply merges o onto base, field by field. Fields set in o win.
func (o *Overlay) Apply(base Config) Config {
	if o == nil {
		return base
	}
	if out := o.Output; out != nil {
		if out.DefaultFormat != nil {
			base.Output.DefaultFormat = *out.DefaultFormat
		}
		if out.ShowColor != nil {
			base.Output.ShowColor = *out.ShowColor
		}
		if out.ShowUnicode != nil {
			base.Output.ShowUnicode = *out.ShowUnicode
		}
	}
	if a := o.Archive; a != nil {
		if a.Enabled != nil {
			base.Archive.Enabled = *a.Enabled
		}
		if a.DaysUntilArchive != nil {
			base.Archive.DaysUntilArchive = *a.DaysUntilArchive
		}
		if a.MaxCompletedTasks != nil {
			base.Archive.MaxCompletedTasks = *a.MaxCompletedTasks
		}
		if a.PreserveRecentCount != nil {
			base.Archive.PreserveRecentCount = *a.PreserveRecentCount
		}
		if a.ArchiveOnSessionEnd != nil {
			base.Archive.ArchiveOnSessionEnd = *a.ArchiveOnSessionEnd
		}
		if a.AutoArchiveOnComplete != nil {
			base.Archive.AutoArchiveOnComplete = *a.AutoArchiveOnComplete
		}
	}
	if v := o.Validation; v != nil {
		if v.StrictMode != nil {
			base.Validation.StrictMode = *v.StrictMode
		}
		if v.ChecksumEnabled != nil {
			base.Validation.ChecksumEnabled = *v.ChecksumEnabled
		}
		if v.MaxActiveTasks != nil {
			base.Validation.MaxActiveTasks = *v.MaxActiveTasks
		}
		if pv := v.PhaseValidation; pv != nil {
			if pv.PhaseAdvanceThreshold != nil {
				base.Validation.PhaseValidation.PhaseAdvanceThreshold = *pv.PhaseAdvanceThreshold
			}
			if pv.BlockOnCriticalTasks != nil {
				base.Validation.PhaseValidation.BlockOnCriticalTasks = *pv.BlockOnCriticalTasks
			}
		}
	}
	if s := o.Session; s != nil {
		if s.RequireSessionNote != nil {
			base.Session.RequireSessionNote = *s.RequireSessionNote
		}
		if s.AutoStartSession != nil {
			base.Session.AutoStartSession = *s.AutoStartSession
		}
	}
	if m := o.MultiSession; m != nil {
		if m.Enabled != nil {
			base.MultiSession.Enabled = *m.Enabled
		}
		if m.MaxConcurrentSessions != nil {
			base.MultiSession.MaxConcurrentSessions = *m.MaxConcurrentSessions
		}
		if m.AllowScopeOverlap != nil {
			base.MultiSession.AllowScopeOverlap = *m.AllowScopeOverlap
		}
	}
	if an := o.Analyze; an != nil && an.HierarchyWeight != nil {
		hw := an.HierarchyWeight
		if hw.ParentChild != nil {
			base.Analyze.HierarchyWeight.ParentChild = *hw.ParentChild
		}
		if hw.CrossEpic != nil {
			base.Analyze.HierarchyWeight.CrossEpic = *hw.CrossEpic
		}
		if hw.CrossPhase != nil {
			base.Analyze.HierarchyWeight.CrossPhase = *hw.CrossPhase
		}
	}
	if b := o.Backups; b != nil && b.MaxBackups != nil {
		base.Backups.MaxBackups = *b.MaxBackups
	}
	if d := o.Defaults; d != nil {
		if d.Priority != nil {
			base.Defaults.Priority = *d.Priority
		}
		if d.Phase != nil {
			base.Defaults.Phase = *d.Phase
		}
		if d.Labels != nil {
			base.Defaults.Labels = d.Labels
		}
	}
	if l := o.LifecycleEnforcement; l != nil && l.Mode != nil {
		base.LifecycleEnforcement.Mode = LifecycleMode(*l.Mode)
	}
	return base
}
