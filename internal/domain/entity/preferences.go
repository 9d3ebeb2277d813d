package entity

import (
	"fmt"
	"time"
)

const DefaultClientKey = "default"

type Contrast string

const (
	ContrastNormal Contrast = "normal"
	ContrastHigh   Contrast = "high"
)

type ViewMode string

const (
	ViewModeCard ViewMode = "card"
	ViewModeList ViewMode = "list"
)

type UIPreferences struct {
	Contrast         Contrast `json:"contrast"`
	ReducedMotion    bool     `json:"reducedMotion"`
	SidebarCollapsed bool     `json:"sidebarCollapsed"`
	ContractViewMode ViewMode `json:"contractViewMode"`
}

func DefaultPreferences() UIPreferences {
	return UIPreferences{
		Contrast:         ContrastNormal,
		ReducedMotion:    false,
		SidebarCollapsed: false,
		ContractViewMode: ViewModeCard,
	}
}

// PreferencesPatch carries a partial update; nil fields are left untouched
type PreferencesPatch struct {
	Contrast         *Contrast `json:"contrast,omitempty"`
	ReducedMotion    *bool     `json:"reducedMotion,omitempty"`
	SidebarCollapsed *bool     `json:"sidebarCollapsed,omitempty"`
	ContractViewMode *ViewMode `json:"contractViewMode,omitempty"`
}

func (p *PreferencesPatch) Validate() error {
	if p.Contrast != nil && *p.Contrast != ContrastNormal && *p.Contrast != ContrastHigh {
		return fmt.Errorf("%w: contrast must be normal or high", ErrInvalidInput)
	}
	if p.ContractViewMode != nil && *p.ContractViewMode != ViewModeCard && *p.ContractViewMode != ViewModeList {
		return fmt.Errorf("%w: contractViewMode must be card or list", ErrInvalidInput)
	}
	return nil
}

// ApplyTo returns prefs with the patch merged in
func (p *PreferencesPatch) ApplyTo(prefs UIPreferences) UIPreferences {
	if p.Contrast != nil {
		prefs.Contrast = *p.Contrast
	}
	if p.ReducedMotion != nil {
		prefs.ReducedMotion = *p.ReducedMotion
	}
	if p.SidebarCollapsed != nil {
		prefs.SidebarCollapsed = *p.SidebarCollapsed
	}
	if p.ContractViewMode != nil {
		prefs.ContractViewMode = *p.ContractViewMode
	}
	return prefs
}

// StoredPreferences is a client's preferences row
type StoredPreferences struct {
	ClientKey   string        `json:"client_key" db:"client_key"`
	Preferences UIPreferences `json:"preferences" db:"preferences"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}
