package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// roundTripFunc intercepts the session's calls to the Discord API
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

type capturedEdit struct {
	Content *string                   `json:"content"`
	Embeds  []*discordgo.MessageEmbed `json:"embeds"`
}

type testContext struct {
	t        *testing.T
	session  *discordgo.Session
	economy  *MockEconomyService
	catch    *MockCatchService
	effects  *MockEffectsService
	registry *CommandRegistry

	mu        sync.Mutex
	responses []discordgo.InteractionResponse
	edits     []capturedEdit
}

func newTestContext(t *testing.T) *testContext {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	tc := &testContext{
		t:        t,
		session:  session,
		economy:  new(MockEconomyService),
		catch:    new(MockCatchService),
		effects:  new(MockEffectsService),
		registry: DefaultRegistry(),
	}
	session.Client = &http.Client{Transport: roundTripFunc(tc.roundTrip)}
	return tc
}

func (tc *testContext) roundTrip(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	tc.mu.Lock()
	switch req.Method {
	case http.MethodPost:
		var resp discordgo.InteractionResponse
		if json.Unmarshal(body, &resp) == nil {
			tc.responses = append(tc.responses, resp)
		}
	case http.MethodPatch:
		var edit capturedEdit
		if json.Unmarshal(body, &edit) == nil {
			tc.edits = append(tc.edits, edit)
		}
	}
	tc.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (tc *testContext) services() Services {
	return Services{Economy: tc.economy, Catch: tc.catch, Effects: tc.effects}
}

func (tc *testContext) run(i *discordgo.InteractionCreate) {
	tc.registry.Handle(context.Background(), tc.session, i, tc.services())
}

func (tc *testContext) lastEdit() capturedEdit {
	tc.t.Helper()
	tc.mu.Lock()
	defer tc.mu.Unlock()
	require.NotEmpty(tc.t, tc.edits, "no interaction edit was sent")
	return tc.edits[len(tc.edits)-1]
}

// lastText returns the content or the embed description of the last edit
func (tc *testContext) lastText() string {
	edit := tc.lastEdit()
	if edit.Content != nil {
		return *edit.Content
	}
	var parts []string
	for _, e := range edit.Embeds {
		parts = append(parts, e.Title, e.Description)
	}
	return strings.Join(parts, "\n")
}

func commandInteraction(name, guildID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	i := &discordgo.Interaction{
		ID:      "interaction-1",
		AppID:   "app-1",
		Token:   "token-1",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: guildID,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: opts,
		},
	}
	user := &discordgo.User{ID: "user-1", Username: "Tester"}
	if guildID == "" {
		i.User = user
	} else {
		i.Member = &discordgo.Member{User: user}
	}
	return &discordgo.InteractionCreate{Interaction: i}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}
