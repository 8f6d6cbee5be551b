package kafka

import "github.com/segmentio/kafka-go"

// headerCarrier adapts message headers to otel's TextMapCarrier. Set
// replaces an existing key.
type headerCarrier struct{ h *[]kafka.Header }

func (c headerCarrier) Get(k string) string {
	for _, x := range *c.h {
		if x.Key == k {
			return string(x.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(k, v string) {
	for i, x := range *c.h {
		if x.Key == k {
			(*c.h)[i].Value = []byte(v)
			return
		}
	}
	*c.h = append(*c.h, kafka.Header{Key: k, Value: []byte(v)})
}

func (c headerCarrier) Keys() []string {
	ks := make([]string, 0, len(*c.h))
	for _, x := range *c.h {
		ks = append(ks, x.Key)
	}
	return ks
}
