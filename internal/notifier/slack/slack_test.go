package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sampleEvent(kind notifier.EventKind) notifier.MatchEvent {
	roster := []notifier.RosterSlot{
		{PlayerID: 1, PlayerName: "Ana", Team: club.TeamA, Role: club.RoleHealer, Result: club.ResultWin},
		{PlayerID: 2, PlayerName: "Bo", Team: club.TeamA, Role: club.RoleTank, Result: club.ResultWin},
		{PlayerID: 3, PlayerName: "", Team: club.TeamB, Role: club.RoleDPS, Result: club.ResultLoss},
	}
	return notifier.MatchEvent{
		Kind: kind,
		Match: club.Match{
			ID:        12,
			Winner:    club.TeamA,
			CreatedAt: time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC),
			MapName:   "Ilios",
			BanA:      "Ana",
			BanB:      "Mercy",
		},
		Roster:    roster,
		ActorID:   1,
		ActorName: "Root",
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", time.UTC, true, metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", time.UTC, false, metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", time.UTC, false, metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage())

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

func TestSendMatchNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", time.UTC, false, metrics.NewMock())
	err := notifier.SendMatchNotification(context.Background(), sampleEvent("match-created"))
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendMatchNotification")
}

func TestFormatMatchNotification(t *testing.T) {
	toronto, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	client := NewNotifierWithAPI(nil, "C123", toronto, true, metrics.NewMock())

	msg := client.formatMatchNotification(sampleEvent(notifier.MatchCreated))
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🎮 New match recorded! 🎮", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "Match #12 on Ilios\nTime: Wednesday 09 Jul, 16:00\nBans: Ana / Mercy\nResult: Team A won! 🏆", details.Text.Text)

	teams, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Third block should be a SectionBlock")
	require.Len(t, teams.Fields, 2)
	assert.Equal(t, "Team A\n• Tank: Bo\n• Healer: Ana", teams.Fields[0].Text)
	assert.Equal(t, "Team B\n• DPS: #3", teams.Fields[1].Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Fourth block should be a ContextBlock")
	actor, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "By Root", actor.Text)
}

func TestFormatMatchNotification_Deleted(t *testing.T) {
	client := NewNotifierWithAPI(nil, "C123", time.UTC, true, metrics.NewMock())

	event := sampleEvent(notifier.MatchDeleted)
	event.Roster = nil
	event.ActorName = ""
	msg := client.formatMatchNotification(event)
	require.Len(t, msg.Blocks.BlockSet, 2)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Match #12 on Ilios\nTime: Wednesday 09 Jul, 20:00", details.Text.Text)
}
