package makruk

// {dRow, dCol}
var (
	rookDirs   = [][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
	kingDirs   = [][2]int{{-1, -1}, {-1, 0}, {-1, +1}, {0, -1}, {0, +1}, {+1, -1}, {+1, 0}, {+1, +1}}

	knightLeaps = [][2]int{
		{-2, -1}, {-2, +1}, {-1, -2}, {-1, +2},
		{+1, -2}, {+1, +2}, {+2, -1}, {+2, +1},
	}
)

// genRays walks each direction up to maxSteps squares (0 = until the edge).
// Empty squares are added and the walk continues; an enemy piece is added and
// ends the walk; an own piece ends it without being added.
func genRays(p *Position, from Square, dirs [][2]int, maxSteps int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := p.Board.Squares[from].Side()
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for steps := 1; onBoard(r, c); steps++ {
			to := indexOf(r, c)
			pc := p.Board.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			if maxSteps > 0 && steps >= maxSteps {
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// ขุน: one step any direction
func genKingMoves(p *Position, from Square, moves *[]Move) {
	genRays(p, from, kingDirs, 1, moves)
}

// เม็ด: one step diagonally
func genMetMoves(p *Position, from Square, moves *[]Move) {
	genRays(p, from, bishopDirs, 1, moves)
}

// เรือ
func genRookMoves(p *Position, from Square, moves *[]Move) {
	genRays(p, from, rookDirs, 0, moves)
}

// โคน: one step diagonally or one step straight ahead
func genKhonMoves(p *Position, from Square, moves *[]Move) {
	genRays(p, from, bishopDirs, 1, moves)
	side := p.Board.Squares[from].Side()
	genRays(p, from, [][2]int{{forwardDir(side), 0}}, 1, moves)
}

// ม้า: leaps are never blocked
func genKnightMoves(p *Position, from Square, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	side := p.Board.Squares[from].Side()
	for _, l := range knightLeaps {
		r, c := row+l[0], col+l[1]
		if !onBoard(r, c) {
			continue
		}
		to := indexOf(r, c)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

// เบี้ย: one step forward onto an empty square. Diagonal captures are not
// generated. A pawn standing on its promotion rank (possible only in a loaded
// position, since Apply promotes on arrival) moves as a Met.
func (rs Ruleset) genPawnMoves(p *Position, from Square, moves *[]Move) {
	pc := p.Board.Squares[from]
	if pc == 0 {
		return
	}
	side := pc.Side()
	row, col := rowOf(from), colOf(from)
	if row == rs.promotionRow(side) {
		genMetMoves(p, from, moves)
		return
	}
	r := row + forwardDir(side)
	if !onBoard(r, col) {
		return
	}
	to := indexOf(r, col)
	if p.Board.Squares[to] == 0 {
		*moves = append(*moves, Move{From: from, To: to})
	}
}
