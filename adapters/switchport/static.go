package switchport

import (
	"context"

	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
)

// StaticResolver is a placeholder implementation used until the real
// lookup API endpoint is wired up. It answers every kennitala with the
// same sample switch/port pair.
type StaticResolver struct {
	logger *zap.Logger
}

// NewStaticResolver creates a resolver that always returns SW001/P001.
func NewStaticResolver(logger *zap.Logger) repositories.SwitchPortResolver {
	return &StaticResolver{logger: logger}
}

// Resolve implements repositories.SwitchPortResolver
func (s *StaticResolver) Resolve(ctx context.Context, kennitala string) (entities.SwitchPort, error) {
	s.logger.Info("Resolving switch/port with static data",
		zap.String("kennitala", kennitala))

	return entities.SwitchPort{
		SwitchNumber: "SW001",
		PortNumber:   "P001",
		Message:      "Success",
	}, nil
}
