package helpers

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// SentRequest is one Bot API call captured by MockBotClient
type SentRequest struct {
	Method string
	Params map[string]string
}

// MockBotClient is a mock BotClient that records every Bot API call
type MockBotClient struct {
	mu       sync.Mutex
	requests []SentRequest
}

func (m *MockBotClient) RequestWithContext(ctx context.Context, token string, method string, params map[string]string, data map[string]gotgbot.NamedReader, opts *gotgbot.RequestOpts) (json.RawMessage, error) {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}

	m.mu.Lock()
	m.requests = append(m.requests, SentRequest{Method: method, Params: copied})
	m.mu.Unlock()

	// Return a mock successful response for all requests
	mockResponse := `{"message_id":1,"date":1234567890,"chat":{"id":12345,"type":"private"},"text":"test"}`
	return json.RawMessage(mockResponse), nil
}

// Requests returns the calls recorded so far
func (m *MockBotClient) Requests() []SentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// SentTexts returns the text of every sendMessage call in order
func (m *MockBotClient) SentTexts() []string {
	var texts []string
	for _, r := range m.Requests() {
		if r.Method == "sendMessage" {
			texts = append(texts, r.Params["text"])
		}
	}
	return texts
}

// LastText returns the text of the most recent sendMessage call, or ""
func (m *MockBotClient) LastText() string {
	texts := m.SentTexts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (m *MockBotClient) TimeoutContext(opts *gotgbot.RequestOpts) (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func (m *MockBotClient) GetAPIURL(opts *gotgbot.RequestOpts) string {
	return "https://api.telegram.org"
}

func (m *MockBotClient) FileURL(token string, tgFilePath string, opts *gotgbot.RequestOpts) string {
	return "https://api.telegram.org/file/bot" + token + "/" + tgFilePath
}

// MockBot creates a minimal gotgbot.Bot instance for testing
type MockBot struct {
	Bot    *gotgbot.Bot
	Client *MockBotClient
}

// NewMockBot creates a new mock bot instance with a mock BotClient
func NewMockBot() *MockBot {
	bot := &gotgbot.Bot{
		User: gotgbot.User{
			Id:        12345,
			IsBot:     true,
			FirstName: "TestBot",
			Username:  "test_bot",
		},
		Token: "test_token",
	}

	client := &MockBotClient{}
	bot.BotClient = client

	return &MockBot{
		Bot:    bot,
		Client: client,
	}
}

// MockContext creates a minimal ext.Context for testing
type MockContext struct {
	Context *ext.Context
}

// MockContextOptions provides options for creating a mock context
type MockContextOptions struct {
	UserID       int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
	ChatID       int64
	MessageID    int64
	MessageText  string
	Args         []string
	Latitude     float64
	Longitude    float64
}

// NewMockContext creates a new mock context with the given options
func NewMockContext(opts MockContextOptions) *MockContext {
	// Set defaults
	if opts.UserID == 0 {
		opts.UserID = 12345
	}
	if opts.Username == "" {
		opts.Username = "testuser"
	}
	if opts.FirstName == "" {
		opts.FirstName = "Test"
	}
	if opts.ChatID == 0 {
		opts.ChatID = 12345
	}
	if opts.MessageID == 0 {
		opts.MessageID = 1
	}

	user := &gotgbot.User{
		Id:           opts.UserID,
		IsBot:        false,
		FirstName:    opts.FirstName,
		LastName:     opts.LastName,
		Username:     opts.Username,
		LanguageCode: opts.LanguageCode,
	}

	message := &gotgbot.Message{
		MessageId: opts.MessageID,
		From:      user,
		Chat: gotgbot.Chat{
			Id:   opts.ChatID,
			Type: "private",
		},
		Text: opts.MessageText,
	}

	// Args() parses from the message text
	if len(opts.Args) > 0 {
		message.Text = strings.Join(opts.Args, " ")
	}

	if opts.Latitude != 0 || opts.Longitude != 0 {
		message.Location = &gotgbot.Location{
			Latitude:  opts.Latitude,
			Longitude: opts.Longitude,
		}
	}

	ctx := &ext.Context{
		Update: &gotgbot.Update{
			Message: message,
		},
		EffectiveUser:    user,
		EffectiveChat:    &message.Chat,
		EffectiveMessage: message,
		Data:             make(map[string]interface{}),
	}

	return &MockContext{Context: ctx}
}

// NewSimpleMockContext creates a simple mock context with minimal setup
func NewSimpleMockContext(userID int64, messageText string) *MockContext {
	return NewMockContext(MockContextOptions{
		UserID:      userID,
		MessageText: messageText,
	})
}

// NewMockContextWithLocation creates a mock context with location data
func NewMockContextWithLocation(userID int64, lat, lon float64) *MockContext {
	return NewMockContext(MockContextOptions{
		UserID:    userID,
		Latitude:  lat,
		Longitude: lon,
	})
}
