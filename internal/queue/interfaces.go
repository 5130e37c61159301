package queue

import "context"

type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}
