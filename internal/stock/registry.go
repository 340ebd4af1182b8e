package stock

import (
	"VendingBus/internal/core/ports"
)

// RegisterAll subscribes each subscriber to every topic it declares.
func RegisterAll(bus ports.EventBus, subs ...ports.Subscriber) {
	for _, sub := range subs {
		for _, topic := range sub.Topics() {
			bus.Subscribe(topic, sub)
		}
	}
}
