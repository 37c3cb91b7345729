package domain

// MaxHealth is the participant health ceiling.
const MaxHealth = 100

// ParticipantStatus describes the condition of a participant.
type ParticipantStatus int

const (
	// ParticipantStatusUnspecified represents an invalid status value.
	ParticipantStatusUnspecified ParticipantStatus = iota
	// ParticipantStatusAlive indicates full health with no damage taken.
	ParticipantStatusAlive
	// ParticipantStatusInjured indicates the participant has taken damage
	// but remains in the match.
	ParticipantStatusInjured
	// ParticipantStatusEliminated indicates the participant is out of the
	// match. Only an explicit revive action reverses this.
	ParticipantStatusEliminated
)

// String returns the wire representation of the status.
func (s ParticipantStatus) String() string {
	switch s {
	case ParticipantStatusAlive:
		return "alive"
	case ParticipantStatusInjured:
		return "injured"
	case ParticipantStatusEliminated:
		return "eliminated"
	default:
		return "unspecified"
	}
}

// IsValid reports whether the status is a usable value.
func (s ParticipantStatus) IsValid() bool {
	switch s {
	case ParticipantStatusAlive, ParticipantStatusInjured, ParticipantStatusEliminated:
		return true
	default:
		return false
	}
}

// ParseParticipantStatus maps a wire string to a ParticipantStatus.
func ParseParticipantStatus(s string) (ParticipantStatus, bool) {
	for _, status := range []ParticipantStatus{ParticipantStatusAlive, ParticipantStatusInjured, ParticipantStatusEliminated} {
		if status.String() == s {
			return status, true
		}
	}
	return ParticipantStatusUnspecified, false
}

// Participant represents one tribute in a match.
type Participant struct {
	ID            string
	MatchID       string
	CharacterID   string
	DisplayName   string
	CurrentHealth int
	Status        ParticipantStatus
	StreakScore   int
	Location      Location
}

// InMatch reports whether the participant is still in the match.
// Injured participants count as in-match; only eliminated ones do not.
func (p Participant) InMatch() bool {
	return p.Status == ParticipantStatusAlive || p.Status == ParticipantStatusInjured
}

// ApplyDamage reduces health by amount and derives the status: zero health
// eliminates, any surviving damage marks the participant injured.
func (p *Participant) ApplyDamage(amount int) {
	if amount <= 0 || !p.InMatch() {
		return
	}
	p.CurrentHealth -= amount
	if p.CurrentHealth <= 0 {
		p.CurrentHealth = 0
		p.Status = ParticipantStatusEliminated
		return
	}
	p.Status = ParticipantStatusInjured
}

// Heal raises health by amount, capped at MaxHealth. Healing does not by
// itself change the status; eliminated participants are unaffected.
func (p *Participant) Heal(amount int) {
	if amount <= 0 || !p.InMatch() {
		return
	}
	p.CurrentHealth += amount
	if p.CurrentHealth > MaxHealth {
		p.CurrentHealth = MaxHealth
	}
}

// AdjustHealth adds delta to health, clamped to [0, MaxHealth]. A result of
// zero eliminates the participant. Eliminated participants are unaffected.
func (p *Participant) AdjustHealth(delta int) {
	if !p.InMatch() || delta == 0 {
		return
	}
	p.CurrentHealth += delta
	if p.CurrentHealth > MaxHealth {
		p.CurrentHealth = MaxHealth
	}
	if p.CurrentHealth <= 0 {
		p.CurrentHealth = 0
		p.Status = ParticipantStatusEliminated
		return
	}
	if delta < 0 {
		p.Status = ParticipantStatusInjured
	}
}

// Eliminate removes the participant from the match.
func (p *Participant) Eliminate() {
	p.CurrentHealth = 0
	p.Status = ParticipantStatusEliminated
}

// Revive returns an eliminated participant to the match at the given
// health. The status becomes alive regardless of prior damage.
func (p *Participant) Revive(health int) {
	if health <= 0 {
		health = 1
	}
	if health > MaxHealth {
		health = MaxHealth
	}
	p.CurrentHealth = health
	p.Status = ParticipantStatusAlive
}
