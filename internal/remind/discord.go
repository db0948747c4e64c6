package remind

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// maxMessageLen is Discord's limit for one message.
const maxMessageLen = 2000

type messageSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSink posts digests to a Discord channel through a bot account.
type DiscordSink struct {
	session   messageSender
	channelID string
}

// NewDiscordSink creates a bot session. No gateway connection is opened;
// messages go through the REST API.
func NewDiscordSink(token, channelID string) (*DiscordSink, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord token and channel are required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return &DiscordSink{session: session, channelID: channelID}, nil
}

// Send posts message, split on line boundaries to fit Discord's size limit.
func (s *DiscordSink) Send(ctx context.Context, message string) error {
	for _, chunk := range split(message, maxMessageLen) {
		if _, err := s.session.ChannelMessageSend(s.channelID, chunk, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("posting to channel %s: %w", s.channelID, err)
		}
	}
	return nil
}

// split cuts message into pieces of at most limit bytes, preferring line
// breaks. Lines longer than limit are cut at the last rune boundary that fits.
func split(message string, limit int) []string {
	var chunks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}
	for _, line := range strings.SplitAfter(message, "\n") {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if cur.Len()+len(line) > limit {
			flush()
		}
		cur.WriteString(line)
	}
	flush()
	return chunks
}
