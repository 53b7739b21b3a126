package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/RobinCoderZhao/checkin-notify/pkg/notify"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	gt.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	gt.NoError(t, s.Record(ctx, "first", notify.Outcomes{
		{Channel: notify.ChannelEmail, Duration: 1500 * time.Millisecond},
		{Channel: notify.ChannelGotify, Err: errors.New("connection refused")},
	}))
	s.now = func() time.Time { return base.Add(time.Hour) }
	gt.NoError(t, s.Record(ctx, "second", nil))

	pushes, err := s.Recent(ctx, 10)
	gt.NoError(t, err)
	gt.A(t, pushes).Length(2)

	gt.Equal(t, pushes[0].Title, "second")
	gt.A(t, pushes[0].Deliveries).Length(0)

	first := pushes[1]
	gt.Equal(t, first.Title, "first")
	gt.True(t, first.CreatedAt.Equal(base))
	gt.A(t, first.Deliveries).Length(2)
	gt.Equal(t, first.Deliveries[0], Delivery{Channel: notify.ChannelEmail, OK: true, Duration: 1500 * time.Millisecond})
	gt.Equal(t, first.Deliveries[1].Channel, notify.ChannelGotify)
	gt.False(t, first.Deliveries[1].OK)
	gt.Equal(t, first.Deliveries[1].Error, "connection refused")
}

func TestRecent_Limit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		gt.NoError(t, s.Record(ctx, title, nil))
	}

	pushes, err := s.Recent(ctx, 2)
	gt.NoError(t, err)
	gt.A(t, pushes).Length(2)
	gt.Equal(t, pushes[0].Title, "c")
	gt.Equal(t, pushes[1].Title, "b")
}

func TestRecorderFromDispatcher(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	d := notify.NewDispatcherFromConfig(notify.DefaultConfig(), notify.WithRecorder(s))
	d.Push(ctx, notify.Message{Title: "daily", Content: "c"})

	pushes, err := s.Recent(ctx, 1)
	gt.NoError(t, err)
	gt.A(t, pushes).Length(1)
	gt.A(t, pushes[0].Deliveries).Length(10)
	for _, del := range pushes[0].Deliveries {
		gt.False(t, del.OK)
	}
}
