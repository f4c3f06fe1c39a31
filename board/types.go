// Package board implements the chess position representation: bitboards,
// a redundant mailbox, Zobrist hashing, legal move generation, and
// reversible make/unmake. It has no knowledge of search or evaluation.
package board

// Square is a board square in 0..63. index = rank*8 + file; rank 0 is
// a1..h1, rank 7 is a8..h8.
type Square int8

// NoSquare is the sentinel for "no square" (an absent en-passant target,
// an absent castling-rook transition, and so on).
const NoSquare Square = -1

// File returns the file (0=a .. 7=h) of the square.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the rank (0=1st .. 7=8th) of the square.
func (s Square) Rank() int { return int(s) / 8 }

// NewSquare builds a square from a 0-indexed file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// Color identifies a side to move or a piece's owner.
type Color int8

const (
	White Color = 0
	Black Color = 1
)

// Opponent returns the other color.
func (c Color) Opponent() Color { return c ^ 1 }

// String renders "white" or "black".
func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind enumerates the six chess piece types plus a None sentinel used
// by the mailbox array. The numbering follows the wire encoding used
// throughout this package and its Zobrist tables.
type PieceKind int8

const (
	King PieceKind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	None
)

var pieceKindLetters = [...]byte{King: 'k', Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n', Pawn: 'p'}

// Letter returns the lowercase algebraic letter for the kind ('p' for pawn).
func (k PieceKind) Letter() byte { return pieceKindLetters[k] }

// CastlingRights is a bitmask over {WK, WQ, BK, BQ}.
type CastlingRights uint8

const (
	CastleWK CastlingRights = 1 << iota
	CastleWQ
	CastleBK
	CastleBQ
)

// Has reports whether the given right is set.
func (c CastlingRights) Has(r CastlingRights) bool { return c&r != 0 }
