// Package discord delivers digests to a Discord channel via the REST API.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/portworks/craneview/internal/notify"
)

// session abstracts the discordgo.Session methods we use, enabling test
// mocks. Digest delivery is REST-only; no gateway connection is opened.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// Adapter sends digests to one Discord channel.
type Adapter struct {
	sess      session
	channelID string
}

// AdapterOpts holds parameters for creating a discord Adapter.
type AdapterOpts struct {
	Token     string
	ChannelID string

	// For testing: inject a mock session instead of the real API.
	Session session
}

// New creates a discord Adapter.
func New(opts AdapterOpts) (*Adapter, error) {
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel_id is required")
	}
	sess := opts.Session
	if sess == nil {
		if opts.Token == "" {
			return nil, fmt.Errorf("discord: token is required")
		}
		dg, err := discordgo.New("Bot " + opts.Token)
		if err != nil {
			return nil, fmt.Errorf("discord: create session: %w", err)
		}
		sess = dg
	}
	return &Adapter{sess: sess, channelID: opts.ChannelID}, nil
}

// Name identifies the platform.
func (a *Adapter) Name() string { return "discord" }

// Send posts the message to the configured channel as an embed.
func (a *Adapter) Send(ctx context.Context, msg notify.Message) error {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		Color:       0x2f81f7,
	}
	for _, f := range msg.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Short,
		})
	}

	if _, err := a.sess.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}

// Close shuts the underlying session down.
func (a *Adapter) Close() error {
	return a.sess.Close()
}
