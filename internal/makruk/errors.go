package makruk

import "errors"

var (
	ErrMalformedRecord = errors.New("malformed position record")
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidRuleset  = errors.New("invalid ruleset")
)
