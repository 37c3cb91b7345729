// Package web exposes the arena service over a JSON HTTP API.
package web

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/service"
	"github.com/louisbranch/lastarena/internal/arena/snapshot"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

// maxRequestBody caps request payloads. Snapshot imports are the largest
// legitimate bodies and stay well under this.
const maxRequestBody = 1 << 20

// Handler routes the arena HTTP API.
type Handler struct {
	svc *service.Service
}

// NewHandler builds the API router for the given service.
func NewHandler(svc *service.Service) http.Handler {
	h := &Handler{svc: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("POST /api/matches", h.handleCreateMatch)
	mux.HandleFunc("POST /api/matches/import", h.handleImportSnapshot)
	mux.HandleFunc("GET /api/matches/{id}", h.handleGetMatch)
	mux.HandleFunc("GET /api/matches/{id}/snapshot", h.handleExportSnapshot)
	mux.HandleFunc("POST /api/matches/{id}/start", h.handleStartMatch)
	mux.HandleFunc("POST /api/matches/{id}/actions", h.handleQueueActions)
	mux.HandleFunc("POST /api/matches/{id}/advance", h.handleAdvanceTurn)
	return mux
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createMatchRequest mirrors the create_match operation inputs.
type createMatchRequest struct {
	RosterIDs        []string          `json:"roster_ids"`
	ParticipantNames map[string]string `json:"participant_names"`
	Settings         domain.Settings   `json:"settings"`
}

type createMatchResponse struct {
	MatchID string `json:"match_id"`
	Phase   string `json:"phase"`
}

func (h *Handler) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.svc.CreateMatch(r.Context(), domain.CreateMatchInput{
		CharacterIDs: req.RosterIDs,
		DisplayNames: req.ParticipantNames,
		Settings:     req.Settings,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createMatchResponse{MatchID: result.MatchID, Phase: result.Phase})
}

type startMatchResponse struct {
	Phase      string `json:"phase"`
	CyclePhase string `json:"cycle_phase"`
	TurnNumber int    `json:"turn_number"`
}

func (h *Handler) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.StartMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, startMatchResponse{
		Phase:      result.Phase,
		CyclePhase: result.CyclePhase,
		TurnNumber: result.TurnNumber,
	})
}

// queueActionsRequest carries raw action envelopes; each is decoded and
// shape-validated individually.
type queueActionsRequest struct {
	Actions []json.RawMessage `json:"actions"`
}

type queueActionsResponse struct {
	AcceptedCount int `json:"accepted_count"`
	PendingCount  int `json:"pending_count"`
}

func (h *Handler) handleQueueActions(w http.ResponseWriter, r *http.Request) {
	var req queueActionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	actions := make([]domain.Action, 0, len(req.Actions))
	for _, raw := range req.Actions {
		action, err := domain.UnmarshalAction(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		actions = append(actions, action)
	}
	result, err := h.svc.QueueActions(r.Context(), r.PathValue("id"), actions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queueActionsResponse{
		AcceptedCount: result.AcceptedCount,
		PendingCount:  result.PendingCount,
	})
}

type advanceTurnResponse struct {
	TurnNumber      int            `json:"turn_number"`
	CyclePhase      string         `json:"cycle_phase"`
	TensionLevel    float64        `json:"tension_level"`
	Event           snapshot.Event `json:"event"`
	SurvivorsCount  int            `json:"survivors_count"`
	EliminatedIDs   []string       `json:"eliminated_ids"`
	Finished        bool           `json:"finished"`
	WinnerID        string         `json:"winner_id,omitempty"`
	ReplaySignature string         `json:"replay_signature"`
}

func (h *Handler) handleAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.AdvanceTurn(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	eliminated := result.EliminatedIDs
	if eliminated == nil {
		eliminated = []string{}
	}
	writeJSON(w, http.StatusOK, advanceTurnResponse{
		TurnNumber:      result.TurnNumber,
		CyclePhase:      result.CyclePhase.String(),
		TensionLevel:    result.TensionLevel,
		Event:           snapshot.EventFromRecord(result.Event),
		SurvivorsCount:  result.SurvivorsCount,
		EliminatedIDs:   eliminated,
		Finished:        result.Finished,
		WinnerID:        result.WinnerID,
		ReplaySignature: result.Signature,
	})
}

func (h *Handler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetMatchState(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	env, err := h.svc.ExportSnapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *Handler) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	var env snapshot.Envelope
	if err := decodeJSON(w, r, &env); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.svc.ImportSnapshot(r.Context(), env)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createMatchResponse{MatchID: result.MatchID, Phase: result.Phase})
}

// decodeJSON enforces the content type and body size before decoding.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return apperrors.Newf(apperrors.CodeValidation, "unsupported content type %q", contentType)
		}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "malformed request body", err)
	}
	return nil
}

// errorResponse is the wire form of a failed request.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.CodeInternal, "internal error", err)
	}
	writeJSON(w, apperrors.HTTPStatus(appErr.Code), errorResponse{
		Error: errorBody{Code: string(appErr.Code), Message: appErr.Message},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
