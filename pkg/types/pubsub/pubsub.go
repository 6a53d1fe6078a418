package pubsub

// Handler consumes one published payload.
type Handler func(payload []byte) error

type Publisher interface {
	Publish(payload []byte) error
}

type Subscriber interface {
	Subscribe() error
}

type PubSub interface {
	Publisher
	Subscriber
}
