package board

import "errors"

var (
	ErrInvalidColor    = errors.New("the color must be white or black")
	ErrInvalidPiece    = errors.New("invalid piece")
	ErrOffBoard        = errors.New("square off board")
	ErrOccupiedSquare  = errors.New("square occupied")
	ErrNoPieceAtSquare = errors.New("no piece at square")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidFEN      = errors.New("invalid FEN")
)
