package domain

// Topic identifies an event kind routed by the bus. The set is closed.
type Topic uint8

const (
	TopicSold Topic = iota
	TopicRefilled
	TopicStockLow
	TopicStockOk

	// TopicCount is the number of known topics.
	TopicCount = int(TopicStockOk) + 1
)

var topicNames = [TopicCount]string{
	TopicSold:     "sold",
	TopicRefilled: "refilled",
	TopicStockLow: "stock_low",
	TopicStockOk:  "stock_ok",
}

// Topics returns every known topic in declaration order.
func Topics() []Topic {
	return []Topic{TopicSold, TopicRefilled, TopicStockLow, TopicStockOk}
}

// Valid reports whether t is one of the declared topics.
func (t Topic) Valid() bool {
	return int(t) < TopicCount
}

func (t Topic) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return topicNames[t]
}
