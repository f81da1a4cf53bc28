package notification

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNotifier is a test implementation of Notifier
type mockNotifier struct {
	name      string
	typeName  string
	sendFunc  func(ctx context.Context, event Event) error
	sendCount int32
	lastEvent atomic.Value
}

func (m *mockNotifier) Name() string {
	return m.name
}

func (m *mockNotifier) Type() string {
	return m.typeName
}

func (m *mockNotifier) Send(ctx context.Context, event Event) error {
	atomic.AddInt32(&m.sendCount, 1)
	m.lastEvent.Store(event)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, event)
	}
	return nil
}

func (m *mockNotifier) getSendCount() int {
	return int(atomic.LoadInt32(&m.sendCount))
}

func testEvent() Event {
	return Event{
		Type:          EventBackupCompleted,
		ContainerName: "db",
		Kind:          "mysql",
		Artifact:      "mysql_backup_db_20260115_040000.sql.gz",
		Size:          2048,
		Duration:      3 * time.Second,
		Timestamp:     time.Now(),
	}
}

func TestNewManager(t *testing.T) {
	mgr := NewManager()
	require.NotNil(t, mgr)
	assert.Equal(t, 0, mgr.NotifierCount())
}

func TestManager_AddNotifier(t *testing.T) {
	mgr := NewManager()

	mgr.AddNotifier("telegram", &mockNotifier{name: "telegram", typeName: "telegram"})
	mgr.AddNotifier("discord", &mockNotifier{name: "discord", typeName: "discord"})

	assert.Equal(t, 2, mgr.NotifierCount())
}

func TestManager_AddNotifier_Replace(t *testing.T) {
	mgr := NewManager()

	mgr.AddNotifier("team", &mockNotifier{name: "team", typeName: "telegram"})
	mgr.AddNotifier("team", &mockNotifier{name: "team", typeName: "discord"})

	assert.Equal(t, 1, mgr.NotifierCount(), "expected 1 notifier after replacement")
}

func TestManager_Notify_SingleProvider(t *testing.T) {
	mgr := NewManager()
	notifier := &mockNotifier{name: "telegram", typeName: "telegram"}
	mgr.AddNotifier("telegram", notifier)

	mgr.Notify(context.Background(), testEvent(), []string{"telegram"})

	assert.Equal(t, 1, notifier.getSendCount())
	got := notifier.lastEvent.Load().(Event)
	assert.Equal(t, EventBackupCompleted, got.Type)
	assert.Equal(t, "db", got.ContainerName)
}

func TestManager_Notify_OnlyNamedProviders(t *testing.T) {
	mgr := NewManager()
	telegram := &mockNotifier{name: "telegram", typeName: "telegram"}
	discord := &mockNotifier{name: "discord", typeName: "discord"}
	mgr.AddNotifier("telegram", telegram)
	mgr.AddNotifier("discord", discord)

	mgr.Notify(context.Background(), testEvent(), []string{"discord"})

	assert.Equal(t, 0, telegram.getSendCount())
	assert.Equal(t, 1, discord.getSendCount())
}

func TestManager_Notify_UnknownProvider(t *testing.T) {
	mgr := NewManager()
	notifier := &mockNotifier{name: "telegram", typeName: "telegram"}
	mgr.AddNotifier("telegram", notifier)

	// Unknown names are skipped, known ones still fire
	mgr.Notify(context.Background(), testEvent(), []string{"pager", "telegram"})

	assert.Equal(t, 1, notifier.getSendCount())
}

func TestManager_Notify_NoProviders(t *testing.T) {
	mgr := NewManager()
	notifier := &mockNotifier{name: "telegram", typeName: "telegram"}
	mgr.AddNotifier("telegram", notifier)

	mgr.Notify(context.Background(), testEvent(), nil)

	assert.Equal(t, 0, notifier.getSendCount())
}

func TestManager_Notify_DeliveryFailureIsNotFatal(t *testing.T) {
	mgr := NewManager()
	failing := &mockNotifier{
		name:     "telegram",
		typeName: "telegram",
		sendFunc: func(ctx context.Context, event Event) error {
			return errors.New("api unreachable")
		},
	}
	healthy := &mockNotifier{name: "discord", typeName: "discord"}
	mgr.AddNotifier("telegram", failing)
	mgr.AddNotifier("discord", healthy)

	mgr.Notify(context.Background(), testEvent(), []string{"telegram", "discord"})

	assert.Equal(t, 1, failing.getSendCount())
	assert.Equal(t, 1, healthy.getSendCount())
}
