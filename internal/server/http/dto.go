package httpserver

import (
	"time"

	"makruk/internal/game"
	"makruk/internal/makruk"
	"makruk/internal/server/lobby"
)

// MoveDTO uses square names, e.g. {"from":"a3","to":"a4"}.
type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func moveToDTO(m makruk.Move) MoveDTO {
	return MoveDTO{From: m.From.String(), To: m.To.String()}
}

func movesToDTO(ms []makruk.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func dtoToMove(d MoveDTO) (makruk.Move, error) {
	from, err := makruk.ParseSquare(d.From)
	if err != nil {
		return makruk.Move{}, err
	}
	to, err := makruk.ParseSquare(d.To)
	if err != nil {
		return makruk.Move{}, err
	}
	return makruk.Move{From: from, To: to}, nil
}

type NewGameRequest struct {
	FEN string `json:"fen"` // empty: standard start position
}

// GameRequest carries only the game id (state, undo).
type GameRequest struct {
	GameID string `json:"game_id"`
}

// SquareRequest is a click, drag start, drop or legal-move query.
type SquareRequest struct {
	GameID string `json:"game_id"`
	Square string `json:"square"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type SidesDTO[T any] struct {
	White T `json:"white"`
	Black T `json:"black"`
}

type StateResponse struct {
	GameID     string           `json:"game_id"`
	Position   string           `json:"position"`
	ToMove     string           `json:"to_move"` // "w" / "b"
	Selected   string           `json:"selected,omitempty"`
	Targets    []string         `json:"targets"`
	Dragging   bool             `json:"dragging"`
	LastMove   *MoveDTO         `json:"last_move,omitempty"`
	MoveCount  int              `json:"move_count"`
	Captured   SidesDTO[string] `json:"captured"` // letters taken by each side
	Material   SidesDTO[int]    `json:"material"`
	Check      bool             `json:"check"`
	Checkmate  bool             `json:"checkmate"`
	Status     string           `json:"status"`
	LegalMoves []MoveDTO        `json:"legal_moves"` // every legal move of the side to move
}

type EventDTO struct {
	Kind      string   `json:"kind"`
	Move      *MoveDTO `json:"move,omitempty"`
	Position  string   `json:"position,omitempty"`
	Piece     string   `json:"piece,omitempty"`
	Side      string   `json:"side,omitempty"`
	MoveCount int      `json:"move_count,omitempty"`
}

type CommandResponse struct {
	Action string        `json:"action"`
	Events []EventDTO    `json:"events"`
	State  StateResponse `json:"state"`
}

type GameSummaryDTO struct {
	GameID    string `json:"game_id"`
	Hosted    bool   `json:"hosted"`
	CreatedAt string `json:"created_at,omitempty"` // RFC 3339
	UpdatedAt string `json:"updated_at,omitempty"`
}

type GamesResponse struct {
	Games []GameSummaryDTO `json:"games"`
}

type LegalResponse struct {
	Square  string   `json:"square"`
	Targets []string `json:"targets"`
}

func sideToString(s makruk.Side) string {
	if s == makruk.Black {
		return "b"
	}
	return "w"
}

func squaresToStrings(sqs []makruk.Square) []string {
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func gamesToDTO(games []lobby.GameInfo) []GameSummaryDTO {
	out := make([]GameSummaryDTO, len(games))
	for i, g := range games {
		out[i] = GameSummaryDTO{
			GameID:    g.ID,
			Hosted:    g.Hosted,
			CreatedAt: formatTime(g.CreatedAt),
			UpdatedAt: formatTime(g.UpdatedAt),
		}
	}
	return out
}

func stateToDTO(id string, st game.State) StateResponse {
	resp := StateResponse{
		GameID:    id,
		Position:  st.Position,
		ToMove:    sideToString(st.SideToMove),
		Targets:   squaresToStrings(st.Targets),
		Dragging:  st.Dragging,
		MoveCount: st.MoveCount,
		Captured: SidesDTO[string]{
			White: game.PieceLetters(st.Captured[makruk.White]),
			Black: game.PieceLetters(st.Captured[makruk.Black]),
		},
		Material:   SidesDTO[int]{White: st.Material[makruk.White], Black: st.Material[makruk.Black]},
		Check:      st.Check,
		Checkmate:  st.Checkmate,
		Status:     string(st.Status),
		LegalMoves: movesToDTO(st.LegalMoves),
	}
	if st.Selected != makruk.NoSquare {
		resp.Selected = st.Selected.String()
	}
	if st.LastMove != nil {
		mv := moveToDTO(*st.LastMove)
		resp.LastMove = &mv
	}
	return resp
}

func eventsToDTO(evs []game.Event) []EventDTO {
	out := make([]EventDTO, 0, len(evs))
	for _, ev := range evs {
		d := EventDTO{Kind: ev.Kind.String(), Position: ev.Position, MoveCount: ev.MoveCount}
		switch ev.Kind {
		case game.EventMove, game.EventCapture:
			mv := moveToDTO(ev.Move)
			d.Move = &mv
		case game.EventPositionChanged:
			if ev.Move != (makruk.Move{}) {
				mv := moveToDTO(ev.Move)
				d.Move = &mv
			}
		}
		if ev.Piece != 0 {
			d.Piece = ev.Piece.String()
		}
		if ev.Side != makruk.NoSide && ev.Kind != game.EventPositionChanged {
			d.Side = ev.Side.String()
		}
		out = append(out, d)
	}
	return out
}
