package rabbitmq

import (
	"fmt"
	"sort"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpHeaderCarrier adapts message headers to propagation.TextMapCarrier.
type amqpHeaderCarrier amqp.Table

func (c amqpHeaderCarrier) Get(key string) string {
	switch v := c[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func (c amqpHeaderCarrier) Set(key, value string) {
	c[key] = value
}

// Keys is sorted so injected headers are deterministic.
func (c amqpHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
