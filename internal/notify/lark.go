package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"go.uber.org/zap"
)

// Lark error codes that will not succeed on retry
var larkPermanentCodes = map[int]bool{
	230001: true, // invalid receive_id
	230002: true, // bot not in chat
	230013: true, // user not in bot availability scope
}

// LarkChannel sends lifecycle events as Lark text messages. Recipient IDs are
// passed to Lark as-is, interpreted according to the configured receive ID type.
type LarkChannel struct {
	client        *lark.Client
	receiveIDType string
	logger        *zap.Logger
}

// NewLarkChannel creates a Lark channel. Extra client options are appended
// after the defaults, e.g. lark.WithOpenBaseUrl for a private deployment.
func NewLarkChannel(cfg *config.LarkConfig, logger *zap.Logger, opts ...lark.ClientOptionFunc) *LarkChannel {
	options := []lark.ClientOptionFunc{
		lark.WithLogLevel(larkcore.LogLevelInfo),
		lark.WithEnableTokenCache(true),
	}
	options = append(options, opts...)

	receiveIDType := cfg.ReceiveIDType
	if receiveIDType == "" {
		receiveIDType = "user_id"
	}

	return &LarkChannel{
		client:        lark.NewClient(cfg.AppID, cfg.AppSecret, options...),
		receiveIDType: receiveIDType,
		logger:        logger,
	}
}

func (c *LarkChannel) Name() string {
	return "lark"
}

func (c *LarkChannel) Deliver(ctx context.Context, event domain.LifecycleEvent) error {
	content, err := json.Marshal(map[string]string{
		"text": event.Title() + "\n" + event.Message(),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrPermanent, err)
	}

	for _, userID := range event.RecipientIDs {
		if userID == uuid.Nil {
			continue
		}
		if err := c.send(ctx, event, userID, string(content)); err != nil {
			return err
		}
	}
	return nil
}

func (c *LarkChannel) send(ctx context.Context, event domain.LifecycleEvent, userID uuid.UUID, content string) error {
	// Lark drops a repeated uuid within an hour, so retries do not double post
	dedupKey := uuid.NewSHA1(event.ID, userID[:]).String()

	req := larkIm.NewCreateMessageReqBuilder().
		ReceiveIdType(c.receiveIDType).
		Body(larkIm.NewCreateMessageReqBodyBuilder().
			ReceiveId(userID.String()).
			MsgType("text").
			Content(content).
			Uuid(dedupKey).
			Build()).
		Build()

	resp, err := c.client.Im.Message.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send lark message: %w", err)
	}
	if !resp.Success() {
		c.logger.Warn("Lark API returned failure",
			zap.String("receive_id", userID.String()),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg),
		)
		if larkPermanentCodes[resp.Code] {
			return fmt.Errorf("%w: lark code=%d msg=%s", ErrPermanent, resp.Code, resp.Msg)
		}
		return fmt.Errorf("lark API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}
	return nil
}
