package domain

import "github.com/rotisserie/eris"

var (
	ErrNotFound           = eris.New("not found")
	ErrInvalidCoordinates = eris.New("invalid coordinates")
	ErrInvalidDeployment  = eris.New("invalid deployment")
	ErrLocationUnknown    = eris.New("location unknown")
	ErrPingsDisabled      = eris.New("officer has disabled pings")
	ErrOutOfRange         = eris.New("target out of range")
)
