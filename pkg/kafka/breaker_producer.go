package kafka

import (
	"context"

	"github.com/sakashimaa/go-pet-project/backoffice/pkg/utils"
	"github.com/sony/gobreaker"
)

// breakerProducer stops hammering the brokers once publishing keeps failing.
// While the breaker is open ProduceMessage returns gobreaker.ErrOpenState.
type breakerProducer struct {
	next Producer
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerProducer(next Producer, cb *gobreaker.CircuitBreaker) Producer {
	return &breakerProducer{next: next, cb: cb}
}

func (p *breakerProducer) ProduceMessage(ctx context.Context, topic string, message interface{}) error {
	_, err := utils.ExecuteWithBreaker(p.cb, func() (struct{}, error) {
		return struct{}{}, p.next.ProduceMessage(ctx, topic, message)
	})

	return err
}

func (p *breakerProducer) Close() error {
	return p.next.Close()
}
