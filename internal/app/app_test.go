package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	gomail "gopkg.in/gomail.v2"

	"github.com/talkincode/bocmarket/config"
	"github.com/talkincode/bocmarket/internal/domain"
	"github.com/talkincode/bocmarket/internal/store"
)

// blockingSender stalls delivery until released, to observe whether a
// publisher waits on it.
type blockingSender struct {
	release chan struct{}
	sent    chan struct{}
}

func (b *blockingSender) DialAndSend(m ...*gomail.Message) error {
	<-b.release
	close(b.sent)
	return nil
}

func setupApp(t *testing.T) *Application {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	a := NewApplication(config.DefaultAppConfig)
	a.node, err = snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	a.OverrideStore(kv)
	return a
}

func TestReceiptDeliveryOffCheckoutPath(t *testing.T) {
	a := setupApp(t)
	ctx := context.Background()

	cfg := a.Settings().EmailConfig(ctx)
	cfg.EnableEmailNotifications = true
	cfg.AutoSendReceipts = true
	cfg.DefaultEmail = "fan@example.com"
	if err := a.Settings().SaveEmailConfig(ctx, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	sender := &blockingSender{release: make(chan struct{}), sent: make(chan struct{})}
	a.Receipt().WithSender("caja@bocmarket.example", sender)

	// Publishing a committed sale must return while delivery is still
	// in flight; the checkout response never waits on SMTP.
	published := make(chan struct{})
	go func() {
		a.Bus().Publish(domain.TopicSaleCommitted, &domain.Sale{ID: "s1", Date: time.Now()})
		close(published)
	}()
	select {
	case <-published:
	case <-time.After(3 * time.Second):
		t.Fatal("publish blocked on receipt delivery")
	}

	close(sender.release)
	select {
	case <-sender.sent:
	case <-time.After(3 * time.Second):
		t.Fatal("receipt was never delivered")
	}
}
