package publisher

import (
	"context"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

type PatrolPublisher interface {
	PublishAlert(ctx context.Context, alert *domain.PatrolAlert) error
}
