package service

import (
	"encoding/json"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/snapshot"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

// GodModeView reports the operator control channel: its pseudo-phase
// label and the actions still pending for the next turn.
type GodModeView struct {
	Phase          string            `json:"phase"`
	PendingActions []json.RawMessage `json:"pending_actions"`
}

// MatchView is the full wire snapshot returned by GetMatchState.
type MatchView struct {
	Match        snapshot.Match         `json:"match"`
	Settings     domain.Settings        `json:"settings"`
	Participants []snapshot.Participant `json:"participants"`
	RecentEvents []snapshot.Event       `json:"recent_events"`
	GodMode      GodModeView            `json:"god_mode"`
}

// viewFromState builds the wire view from match state.
func viewFromState(state domain.MatchState) (MatchView, error) {
	env, err := snapshot.Capture(state)
	if err != nil {
		return MatchView{}, apperrors.Wrap(apperrors.CodeInternal, "render match view", err)
	}

	pending := make([]json.RawMessage, 0, len(state.PendingActions))
	for _, action := range state.PendingActions {
		raw, err := domain.MarshalAction(action)
		if err != nil {
			return MatchView{}, apperrors.Wrap(apperrors.CodeInternal, "render pending action", err)
		}
		pending = append(pending, raw)
	}

	return MatchView{
		Match:        env.Snapshot.Match,
		Settings:     env.Snapshot.Settings,
		Participants: env.Snapshot.Participants,
		RecentEvents: env.Snapshot.RecentEvents,
		GodMode: GodModeView{
			Phase:          domain.GodModePhaseLabel,
			PendingActions: pending,
		},
	}, nil
}
