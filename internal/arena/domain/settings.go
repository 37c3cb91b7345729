package domain

import apperrors "github.com/louisbranch/lastarena/internal/errors"

// SurpriseLevel is a stored-but-inert tuning knob. The engine does not yet
// branch on it; it is carried for forward compatibility.
type SurpriseLevel string

const (
	SurpriseLevelLow    SurpriseLevel = "low"
	SurpriseLevelNormal SurpriseLevel = "normal"
	SurpriseLevelHigh   SurpriseLevel = "high"
)

// IsValid reports whether the surprise level is a supported value.
func (l SurpriseLevel) IsValid() bool {
	switch l {
	case SurpriseLevelLow, SurpriseLevelNormal, SurpriseLevelHigh:
		return true
	default:
		return false
	}
}

// EventProfile is a stored-but-inert tuning knob, like SurpriseLevel.
type EventProfile string

const (
	EventProfileBalanced   EventProfile = "balanced"
	EventProfileAggressive EventProfile = "aggressive"
	EventProfileChaotic    EventProfile = "chaotic"
)

// IsValid reports whether the event profile is a supported value.
func (p EventProfile) IsValid() bool {
	switch p {
	case EventProfileBalanced, EventProfileAggressive, EventProfileChaotic:
		return true
	default:
		return false
	}
}

// Settings holds per-match simulation settings. Seed is the raw client
// value; an empty seed is normalized by the RNG layer, not here, so the
// stored value reflects what the client asked for.
type Settings struct {
	SurpriseLevel   SurpriseLevel `json:"surprise_level"`
	EventProfile    EventProfile  `json:"event_profile"`
	SimulationSpeed float64       `json:"simulation_speed"`
	Seed            string        `json:"seed"`
}

// DefaultSettings returns the settings applied when a field is omitted.
func DefaultSettings() Settings {
	return Settings{
		SurpriseLevel:   SurpriseLevelNormal,
		EventProfile:    EventProfileBalanced,
		SimulationSpeed: 1.0,
	}
}

// Normalized fills zero-valued fields with defaults.
func (s Settings) Normalized() Settings {
	defaults := DefaultSettings()
	if s.SurpriseLevel == "" {
		s.SurpriseLevel = defaults.SurpriseLevel
	}
	if s.EventProfile == "" {
		s.EventProfile = defaults.EventProfile
	}
	if s.SimulationSpeed <= 0 {
		s.SimulationSpeed = defaults.SimulationSpeed
	}
	return s
}

// Validate checks the settings after normalization.
func (s Settings) Validate() error {
	if !s.SurpriseLevel.IsValid() {
		return apperrors.Newf(apperrors.CodeValidation, "unknown surprise level %q", s.SurpriseLevel)
	}
	if !s.EventProfile.IsValid() {
		return apperrors.Newf(apperrors.CodeValidation, "unknown event profile %q", s.EventProfile)
	}
	return nil
}
