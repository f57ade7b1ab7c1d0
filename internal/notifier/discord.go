package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/campushub/campus-events-api/internal/config"
	"github.com/campushub/campus-events-api/internal/models"
)

// Notifier announces event lifecycle changes to a campus channel. Errors are
// reported to the caller but never block the underlying write.
type Notifier interface {
	AnnounceEvent(event models.Event) error
	AnnounceCancellation(event models.Event) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if cfg.DiscordAnnounceChannelID == "" {
		return nil, fmt.Errorf("discord announce channel ID is empty")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, err
	}

	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordAnnounceChannelID,
	}, nil
}

func (n *DiscordNotifier) AnnounceEvent(event models.Event) error {
	message := fmt.Sprintf("📅 **New Event**\n**Title:** %s\n**Venue:** %s\n**When:** %s - %s\n**Capacity:** %d",
		event.Title,
		event.Venue,
		event.StartTime.Format("2006-01-02 15:04"),
		event.EndTime.Format("2006-01-02 15:04"),
		event.Capacity,
	)
	return n.send(message)
}

func (n *DiscordNotifier) AnnounceCancellation(event models.Event) error {
	message := fmt.Sprintf("🚫 **Event Cancelled**\n**Title:** %s\n**Was scheduled for:** %s",
		event.Title,
		event.StartTime.Format("2006-01-02 15:04"),
	)
	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
