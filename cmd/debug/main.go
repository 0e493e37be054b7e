package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"makruk/internal/makruk"
)

func main() {
	fen := flag.String("fen", makruk.StartFEN, "position to inspect")
	square := flag.String("square", "", "only list moves of the piece on this square")
	flag.Parse()

	rules := makruk.DefaultRuleset()
	pos, err := makruk.DecodePosition(*fen)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("FEN:", pos.Encode())
	printBoard(pos)

	var moves []makruk.Move
	if *square != "" {
		sq, err := makruk.ParseSquare(*square)
		if err != nil {
			log.Fatal(err)
		}
		moves = rules.LegalMoves(pos, sq)
	} else {
		moves = rules.LegalMovesForSide(pos, pos.SideToMove)
	}
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	fmt.Printf("Legal moves (%d): %s\n", len(moves), strings.Join(names, " "))

	side := pos.SideToMove
	switch {
	case rules.IsCheckmate(pos, side):
		fmt.Printf("%s is checkmated\n", side)
	case rules.IsCheck(pos, side):
		fmt.Printf("%s is in check\n", side)
	case rules.IsStalemate(pos, side):
		fmt.Printf("%s has no moves\n", side)
	}
}

func printBoard(pos *makruk.Position) {
	for rank := 8; rank >= 1; rank-- {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d ", rank)
		for file := 0; file < 8; file++ {
			sb.WriteString(" ")
			sb.WriteString(pos.At(makruk.SquareAt(file, rank)).String())
		}
		fmt.Println(sb.String())
	}
	fmt.Println("   a b c d e f g h")
}
