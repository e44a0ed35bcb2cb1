package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/pkg/kafka"
)

func event(typ kafka.EventType, user, entity string) kafka.Event {
	return kafka.Event{Type: typ, EntityID: entity, UserID: user, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestFeed_Record(t *testing.T) {
	t.Parallel()
	f := NewFeed(2)
	ctx := context.Background()
	require.NoError(t, f.Record(ctx, event(kafka.EventBookCreated, "admin", "b1")))
	require.NoError(t, f.Record(ctx, event(kafka.EventReviewCreated, "alice", "r1")))
	require.NoError(t, f.Record(ctx, event(kafka.EventReviewCreated, "alice", "r2")))

	s := f.Snapshot()
	assert.Equal(t, map[kafka.EventType]int{kafka.EventBookCreated: 1, kafka.EventReviewCreated: 2}, s.Counts)
	assert.Equal(t, UserActivity{Reviews: 2}, s.Users["alice"])
	assert.Equal(t, UserActivity{Books: 1}, s.Users["admin"])
	require.Len(t, s.Recent, 2)
	assert.Equal(t, "r2", s.Recent[0].EntityID)
	assert.Equal(t, "r1", s.Recent[1].EntityID)

	_, ok := f.User("nobody")
	assert.False(t, ok)
}

func TestFeed_RecordIgnoresMalformed(t *testing.T) {
	t.Parallel()
	f := NewFeed(10)
	ctx := context.Background()
	require.NoError(t, f.Record(ctx, event(kafka.EventReviewCreated, "", "r1")))
	require.NoError(t, f.Record(ctx, event("book.deleted", "admin", "b1")))
	require.NoError(t, f.Record(ctx, event(kafka.EventUserUpserted, "bob", "bob")))

	s := f.Snapshot()
	assert.Equal(t, 2, s.Ignored)
	assert.Equal(t, map[kafka.EventType]int{kafka.EventUserUpserted: 1}, s.Counts)
	assert.Equal(t, map[string]UserActivity{"bob": {Updates: 1}}, s.Users)
	require.Len(t, s.Recent, 1)
	_, ok := f.User("")
	assert.False(t, ok)
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	msgs chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }

func TestConsumer_ConsumeClaim(t *testing.T) {
	t.Parallel()
	valid, err := json.Marshal(event(kafka.EventUserUpserted, "bob", "bob"))
	require.NoError(t, err)
	failing, err := json.Marshal(event(kafka.EventReviewCreated, "fail", "r1"))
	require.NoError(t, err)

	claim := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage, 3)}
	claim.msgs <- &sarama.ConsumerMessage{Offset: 1, Value: valid}
	claim.msgs <- &sarama.ConsumerMessage{Offset: 2, Value: []byte("not json")}
	claim.msgs <- &sarama.ConsumerMessage{Offset: 3, Value: failing}
	close(claim.msgs)

	var got []kafka.Event
	record := func(_ context.Context, ev kafka.Event) error {
		if ev.UserID == "fail" {
			return errors.New("boom")
		}
		got = append(got, ev)
		return nil
	}
	session := &fakeSession{ctx: context.Background()}

	c := NewConsumer(record, zap.NewNop())
	require.NoError(t, c.Setup(session))
	require.NoError(t, c.ConsumeClaim(session, claim))
	require.NoError(t, c.Cleanup(session))

	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].UserID)
	assert.Equal(t, []int64{1, 2}, session.marked)
}

func TestConsumer_StopsOnSessionDone(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage)}

	c := NewConsumer(NewFeed(0).Record, zap.NewNop())
	require.NoError(t, c.ConsumeClaim(session, claim))
	assert.Empty(t, session.marked)
}

func TestHandler(t *testing.T) {
	t.Parallel()
	feed := NewFeed(10)
	require.NoError(t, feed.Record(context.Background(), event(kafka.EventReviewCreated, "alice", "r1")))
	e := NewHandler(feed, zap.NewNop()).NewRouter()

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "health",
			target:     "/manage/health",
			wantStatus: http.StatusOK,
			wantBody:   "OK",
		},
		{
			name:       "user",
			target:     "/activity/users/alice",
			wantStatus: http.StatusOK,
			wantBody:   `{"books":0,"reviews":1,"updates":0}`,
		},
		{
			name:       "unknown user",
			target:     "/activity/users/bob",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"no activity for user"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, stripNewline(w.Body.String()))
		})
	}

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activity", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Counts[kafka.EventReviewCreated])
	require.Len(t, snap.Recent, 1)
}

func stripNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
