package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	lark "github.com/larksuite/oapi-sdk-go/v3"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLark answers the token and message endpoints of the Lark open API
type fakeLark struct {
	mu       sync.Mutex
	messages []map[string]interface{}
	query    []string
	code     int
}

func (f *fakeLark) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.Contains(r.URL.Path, "tenant_access_token"):
		_, _ = io.WriteString(w, `{"code":0,"msg":"ok","tenant_access_token":"t-test","expire":7200}`)
	case strings.HasSuffix(r.URL.Path, "/im/v1/messages"):
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.messages = append(f.messages, body)
		f.query = append(f.query, r.URL.Query().Get("receive_id_type"))
		code := f.code
		f.mu.Unlock()
		if code != 0 {
			_, _ = io.WriteString(w, `{"code":230001,"msg":"invalid receive_id"}`)
			return
		}
		_, _ = io.WriteString(w, `{"code":0,"msg":"success","data":{"message_id":"om_test"}}`)
	default:
		http.NotFound(w, r)
	}
}

func newLarkChannel(t *testing.T, fake *fakeLark) *notify.LarkChannel {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return notify.NewLarkChannel(&config.LarkConfig{
		Enabled:       true,
		AppID:         "cli_test",
		AppSecret:     "secret",
		ReceiveIDType: "user_id",
	}, zap.NewNop(), lark.WithOpenBaseUrl(server.URL))
}

func TestLarkChannel_SendsOneMessagePerRecipient(t *testing.T) {
	fake := &fakeLark{}
	channel := newLarkChannel(t, fake)

	centerA, centerB := uuid.New(), uuid.New()
	event := domain.NewLifecycleEvent(domain.EventRequestCancelled, uuid.New(), nil,
		[]uuid.UUID{centerA, centerB}, time.Now().UTC())

	require.NoError(t, channel.Deliver(context.Background(), event))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.messages, 2)
	assert.Equal(t, centerA.String(), fake.messages[0]["receive_id"])
	assert.Equal(t, centerB.String(), fake.messages[1]["receive_id"])
	assert.Equal(t, "text", fake.messages[0]["msg_type"])
	assert.NotEqual(t, fake.messages[0]["uuid"], fake.messages[1]["uuid"])
	assert.Equal(t, []string{"user_id", "user_id"}, fake.query)
}

func TestLarkChannel_InvalidRecipientIsPermanent(t *testing.T) {
	fake := &fakeLark{code: 230001}
	channel := newLarkChannel(t, fake)

	event := domain.NewLifecycleEvent(domain.EventEstimateAccepted, uuid.New(), nil,
		[]uuid.UUID{uuid.New()}, time.Now().UTC())

	err := channel.Deliver(context.Background(), event)
	assert.ErrorIs(t, err, notify.ErrPermanent)
}
