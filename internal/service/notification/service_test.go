package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/sse"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu        sync.Mutex
	rows      []*notification.Notification
	batches   int
	createErr error
}

func (m *memoryRepo) Create(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.rows = append(m.rows, n)
	return nil
}

func (m *memoryRepo) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
	m.rows = append(m.rows, ns...)
	return nil
}

func (m *memoryRepo) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.rows {
		if n.RecipientID == recipientID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.rows {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.rows {
		for _, id := range ids {
			if n.ID == id && n.RecipientID == recipientID {
				n.IsRead = true
			}
		}
	}
	return nil
}

func (m *memoryRepo) MarkAllAsRead(ctx context.Context, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.rows {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memoryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func request(recipient, title string) notification.CreateNotificationRequest {
	link := "/pwa/aprovacoes/rec-1"
	return notification.CreateNotificationRequest{
		RecipientID: recipient,
		Type:        notification.TypeWarning,
		Title:       title,
		Message:     "João Silva tem 2h extras para aprovar",
		Link:        &link,
	}
}

func TestStopFlushesQueuedNotifications(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo, sse.NewHub(), Config{FlushInterval: time.Hour, WorkerCount: 1}, discardLogger())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.QueueNotification(context.Background(), request("sup-a", "Aprovação de Horas Extras")))
	}
	svc.Stop()

	assert.Equal(t, 3, repo.count())
	assert.Equal(t, "/pwa/aprovacoes/rec-1", *repo.rows[0].Link)

	err := svc.QueueNotification(context.Background(), request("sup-a", "late"))
	assert.ErrorIs(t, err, notification.ErrServiceStopped)
	svc.Stop()
}

func TestBatchSizeTriggersFlushAndPush(t *testing.T) {
	repo := &memoryRepo{}
	hub := sse.NewHub()
	svc := newService(repo, hub, Config{BatchSize: 2, FlushInterval: time.Hour, WorkerCount: 1}, discardLogger())
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, unsubscribe := svc.Subscribe(ctx, "sup-a")
	defer unsubscribe()

	require.NoError(t, svc.QueueNotification(ctx, request("sup-a", "one")))
	require.NoError(t, svc.QueueNotification(ctx, request("sup-a", "two")))

	got := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-events:
			assert.Equal(t, "notification", ev.Event)
			got[ev.Data.Title] = true
		case <-timeout:
			t.Fatalf("received %d of 2 events", len(got))
		}
	}
	assert.Equal(t, 2, repo.count())
}

func TestQueueFullFallsBackToDirectInsert(t *testing.T) {
	repo := &memoryRepo{}
	svc := &service{
		repo:   repo,
		hub:    sse.NewHub(),
		logger: discardLogger(),
		clock:  time.Now,
		queue:  make(chan notification.CreateNotificationRequest),
		stopCh: make(chan struct{}),
	}

	require.NoError(t, svc.QueueNotification(context.Background(), request("op-1", "direct")))
	assert.Equal(t, 1, repo.count())

	repo.createErr = errors.New("db down")
	assert.Error(t, svc.QueueNotification(context.Background(), request("op-1", "direct")))
}

func TestReadState(t *testing.T) {
	repo := &memoryRepo{rows: []*notification.Notification{
		{ID: "n1", RecipientID: "op-1", Title: "a"},
		{ID: "n2", RecipientID: "op-1", Title: "b"},
		{ID: "n3", RecipientID: "op-2", Title: "c"},
	}}
	svc := &service{repo: repo, hub: sse.NewHub(), logger: discardLogger(), clock: time.Now}
	ctx := context.Background()

	list, err := svc.GetNotifications(ctx, "op-1", 0, 500, false)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.UnreadCount)

	err = svc.MarkAsRead(ctx, "op-1", notification.MarkAsReadRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	require.NoError(t, svc.MarkAsRead(ctx, "op-1", notification.MarkAsReadRequest{NotificationIDs: []string{"n1", "n3"}}))
	unread, err := svc.GetUnreadCount(ctx, "op-1")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
	unread, _ = svc.GetUnreadCount(ctx, "op-2")
	assert.Equal(t, 1, unread)

	require.NoError(t, svc.MarkAllAsRead(ctx, "op-1"))
	list, err = svc.GetNotifications(ctx, "op-1", 1, 20, true)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
}
