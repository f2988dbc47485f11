// Package slack delivers digests to a Slack channel via the Web API.
package slack

import (
	"context"
	"fmt"

	"github.com/portworks/craneview/internal/notify"
	slackapi "github.com/slack-go/slack"
)

// client abstracts the slack-go methods we use, enabling test mocks.
type client interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Adapter sends digests to one Slack channel.
type Adapter struct {
	client  client
	channel string
}

// AdapterOpts holds parameters for creating a slack Adapter.
type AdapterOpts struct {
	Token   string
	Channel string

	// For testing: inject a mock client instead of the real API.
	Client client
}

// New creates a slack Adapter.
func New(opts AdapterOpts) (*Adapter, error) {
	if opts.Channel == "" {
		return nil, fmt.Errorf("slack: channel is required")
	}
	c := opts.Client
	if c == nil {
		if opts.Token == "" {
			return nil, fmt.Errorf("slack: token is required")
		}
		c = slackapi.New(opts.Token)
	}
	return &Adapter{client: c, channel: opts.Channel}, nil
}

// Name identifies the platform.
func (a *Adapter) Name() string { return "slack" }

// Send posts the message to the configured channel as an attachment.
func (a *Adapter) Send(ctx context.Context, msg notify.Message) error {
	att := slackapi.Attachment{
		Title: msg.Title,
		Text:  msg.Body,
		Color: "#2f81f7",
	}
	for _, f := range msg.Fields {
		att.Fields = append(att.Fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: f.Short,
		})
	}

	_, _, err := a.client.PostMessageContext(ctx, a.channel,
		slackapi.MsgOptionText(msg.Title, false),
		slackapi.MsgOptionAttachments(att),
	)
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}

// Close is a no-op; the Web API client holds no connection.
func (a *Adapter) Close() error { return nil }
