package helpers

import (
	"log"
	"os"

	"github.com/nats-io/nats.go"
)

var Nats *nats.Conn

// InitNATS starts a new NATS instance
func InitNATS() {
	connection, err := nats.Connect(os.Getenv("NATS_URL"))
	if err != nil {
		log.Printf("Cannot connect to %v: %v", os.Getenv("NATS_URL"), err)
		return
	}

	Nats = connection
}

// Publish allows publishing message on NATS. Publishing is
// best-effort: without a connection the message is dropped.
func Publish(subject string, message []byte) {
	if Nats == nil {
		return
	}

	if err := Nats.Publish(subject, message); err != nil {
		log.Printf("(Publish) Failed to send message to %v, got error: %v", subject, err)
	}
}

// EventPublisher adapts the package connection into an injectable
// collaborator for the submission workflow.
type EventPublisher struct{}

func (EventPublisher) Publish(subject string, message []byte) {
	Publish(subject, message)
}
