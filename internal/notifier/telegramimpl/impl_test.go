package telegramimpl

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

type botStub struct {
	mu       sync.Mutex
	texts    []string
	chatIDs  []string
	failSend bool
}

func (b *botStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	switch r.URL.Path {
	case "/bottok/getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"bot"}}`))
	case "/bottok/sendMessage":
		b.mu.Lock()
		b.texts = append(b.texts, r.Form.Get("text"))
		b.chatIDs = append(b.chatIDs, r.Form.Get("chat_id"))
		fail := b.failSend
		b.mu.Unlock()
		if fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newNotifier(t *testing.T, stub *botStub, token string) *TelegramImpl {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.App.Name = "eclipsed"
	cfg.Telegram.Token = token
	cfg.Telegram.ChatID = 42
	cfg.Telegram.APIEndpoint = srv.URL + "/bot%s/%s"
	return New(Opts{Config: cfg, Logger: logger.Nop()})
}

func TestSendPrefixesMessage(t *testing.T) {
	stub := &botStub{}
	tg := newNotifier(t, stub, "tok")
	if tg.TgBot == nil {
		t.Fatal("bot not initialised")
	}

	tg.Send("Run started")

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.texts) != 1 {
		t.Fatalf("sent %d messages, want 1", len(stub.texts))
	}
	if stub.texts[0] != "[eclipsed]\nRun started" || stub.chatIDs[0] != "42" {
		t.Errorf("sent %q to %s", stub.texts[0], stub.chatIDs[0])
	}
}

func TestSendSwallowsErrors(t *testing.T) {
	stub := &botStub{failSend: true}
	tg := newNotifier(t, stub, "tok")

	tg.Send("Upload failed")

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.texts) != 1 {
		t.Fatalf("sent %d messages, want 1", len(stub.texts))
	}
}

func TestLogOnlyWithoutToken(t *testing.T) {
	stub := &botStub{}
	tg := newNotifier(t, stub, "")
	if tg.TgBot != nil {
		t.Fatal("bot should not be created without a token")
	}

	tg.Send("hello")

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.texts) != 0 {
		t.Errorf("sent %d messages, want 0", len(stub.texts))
	}
}

func TestLogOnlyWhenBotUnreachable(t *testing.T) {
	stub := &botStub{}
	// getMe for an unknown token answers 404, so the bot is never created.
	tg := newNotifier(t, stub, "unknown")
	if tg.TgBot != nil {
		t.Fatal("bot should not be created when getMe fails")
	}
	tg.Send("hello")
}
