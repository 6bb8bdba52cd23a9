package repositories

import (
	"context"
	"errors"

	"github.com/gagnaveita/notkun/domain/entities"
)

// ErrResolutionFailed marks any failure of the switch/port lookup:
// connectivity, non-2xx response, or an unusable payload. The underlying
// cause stays attached via wrapping.
var ErrResolutionFailed = errors.New("switch/port resolution failed")

// SwitchPortResolver maps a normalized kennitala to the switch and port
// serving that subscriber. Implementations make at most one attempt per
// call.
type SwitchPortResolver interface {
	Resolve(ctx context.Context, kennitala string) (entities.SwitchPort, error)
}
