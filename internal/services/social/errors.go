package social

import "errors"

var (
	ErrGemNotFound   = errors.New("hidden gem not found")
	ErrPartyNotFound = errors.New("watch party not found")
	ErrListNotFound  = errors.New("collaborative list not found")
	ErrInvalidVote   = errors.New("vote must be up or down")
)
