package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts match notifications to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	location  *time.Location
	dryRun    bool
}

// NewNotifier creates a new Notifier. Match times are rendered in loc.
func NewNotifier(token, channelID string, loc *time.Location, dryRun bool, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, loc, dryRun, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, loc *time.Location, dryRun bool, metrics metrics.Metrics) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		location:  loc,
		dryRun:    dryRun,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message) (string, string, error) {
	if s.dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendMatchNotification posts a summary of a created, edited or deleted match.
func (s *Notifier) SendMatchNotification(ctx context.Context, event notifier.MatchEvent) error {
	msg := s.formatMatchNotification(event)
	_, _, err := s.sendMessage(ctx, msg)
	return err
}

func (s *Notifier) formatMatchNotification(event notifier.MatchEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	var header string
	switch event.Kind {
	case notifier.MatchCreated:
		header = "🎮 New match recorded! 🎮"
	case notifier.MatchUpdated:
		header = "✏️ Match updated"
	case notifier.MatchDeleted:
		header = "🗑️ Match deleted"
	default:
		header = "Match changed"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	m := event.Match
	when := m.CreatedAt.In(s.location).Format("Monday 02 Jan, 15:04")
	details := fmt.Sprintf("Match #%d on %s\nTime: %s", m.ID, m.MapName, when)
	if event.Kind != notifier.MatchDeleted {
		details += fmt.Sprintf("\nBans: %s / %s\nResult: Team %s won! 🏆", m.BanA, m.BanB, m.Winner)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	if len(event.Roster) > 0 {
		var fields []*slack.TextBlockObject
		for _, team := range []club.Team{club.TeamA, club.TeamB} {
			fields = append(fields, slack.NewTextBlockObject("plain_text", formatTeam(team, event.Roster), true, false))
		}
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	if event.ActorName != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "By "+event.ActorName, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTeam lists a team's players in roster order, Tank first.
func formatTeam(team club.Team, roster []notifier.RosterSlot) string {
	lines := []string{fmt.Sprintf("Team %s", team)}
	for _, role := range []club.Role{club.RoleTank, club.RoleDPS, club.RoleHealer} {
		for _, slot := range roster {
			if slot.Team != team || slot.Role != role {
				continue
			}
			name := slot.PlayerName
			if name == "" {
				name = fmt.Sprintf("#%d", slot.PlayerID)
			}
			lines = append(lines, fmt.Sprintf("• %s: %s", role, name))
		}
	}
	return strings.Join(lines, "\n")
}
