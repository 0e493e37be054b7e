package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"makruk/internal/game"
	"makruk/internal/makruk"
	"makruk/internal/server/lobby"
)

const maxBodyBytes = 1 << 16

// Handler serves the JSON API under /api/. Every endpoint takes a POST body.
type Handler struct {
	games *lobby.Manager
}

func NewHandler(games *lobby.Manager) *Handler {
	return &Handler{games: games}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/games":
		h.handleGames(w)
	case "/api/state":
		h.handleState(w, r)
	case "/api/select":
		h.handleSquare(w, r, (*game.Controller).SelectOrMove)
	case "/api/drag_start":
		h.handleSquare(w, r, (*game.Controller).DragStart)
	case "/api/drop":
		h.handleSquare(w, r, (*game.Controller).Drop)
	case "/api/play":
		h.handlePlay(w, r)
	case "/api/legal":
		h.handleLegal(w, r)
	case "/api/undo":
		h.handleUndo(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.games.NewGame(req.FEN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, h.stateOf(t))
}

// handleGames lists hosted and archived games; the request body is ignored.
func (h *Handler) handleGames(w http.ResponseWriter) {
	games, err := h.games.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, GamesResponse{Games: gamesToDTO(games)})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	t, ok := h.table(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, h.stateOf(t))
}

func (h *Handler) handleSquare(w http.ResponseWriter, r *http.Request, cmd func(*game.Controller, makruk.Square) game.Result) {
	var req SquareRequest
	if !decode(w, r, &req) {
		return
	}
	t, ok := h.table(w, req.GameID)
	if !ok {
		return
	}
	sq, err := makruk.ParseSquare(req.Square)
	if err != nil {
		writeError(w, err)
		return
	}
	res := cmd(t.Game, sq)
	writeJSON(w, h.commandResponse(t, res))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	t, ok := h.table(w, req.GameID)
	if !ok {
		return
	}
	mv, err := dtoToMove(req.Move)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := t.Game.Play(mv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, h.commandResponse(t, res))
}

func (h *Handler) handleLegal(w http.ResponseWriter, r *http.Request) {
	var req SquareRequest
	if !decode(w, r, &req) {
		return
	}
	t, ok := h.table(w, req.GameID)
	if !ok {
		return
	}
	sq, err := makruk.ParseSquare(req.Square)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, LegalResponse{
		Square:  sq.String(),
		Targets: squaresToStrings(t.Game.LegalTargets(sq)),
	})
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	t, ok := h.table(w, req.GameID)
	if !ok {
		return
	}
	res, err := t.Game.Undo()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, h.commandResponse(t, res))
}

func (h *Handler) table(w http.ResponseWriter, id string) (*lobby.Table, bool) {
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "bad game id", http.StatusBadRequest)
		return nil, false
	}
	t, err := h.games.Get(id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return t, true
}

func (h *Handler) stateOf(t *lobby.Table) StateResponse {
	return stateToDTO(t.ID, t.Game.State())
}

func (h *Handler) commandResponse(t *lobby.Table, res game.Result) CommandResponse {
	return CommandResponse{
		Action: res.Action.String(),
		Events: eventsToDTO(res.Events),
		State:  h.stateOf(t),
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lobby.ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, makruk.ErrMalformedRecord),
		errors.Is(err, makruk.ErrInvalidSquare),
		errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrNotYourTurn):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNothingToUndo):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
