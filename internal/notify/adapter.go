// Package notify delivers digest reports to chat platforms.
package notify

import "context"

// Adapter is the interface platform-specific senders satisfy. Adapters are
// delivery-only: craneview pushes digests out, it does not listen for
// inbound chat.
type Adapter interface {
	// Name identifies the platform, e.g. "slack".
	Name() string

	// Send delivers one message to the configured channel.
	Send(ctx context.Context, msg Message) error

	// Close releases the adapter's resources.
	Close() error
}

// Message is a digest formatted for chat delivery.
type Message struct {
	Title  string
	Body   string
	Fields []Field
}

// Field is a key-value pair displayed alongside the message body.
type Field struct {
	Name  string
	Value string
	Short bool
}
