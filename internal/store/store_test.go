package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaleResponsesAreDropped(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	firstCtx, first := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")
	_, second := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled, "superseded request is cancelled")

	newest := &domain.Page[*domain.Job]{Items: []*domain.Job{{ID: "new"}}}
	assert.True(t, st.Fulfill(second, newest))

	stale := &domain.Page[*domain.Job]{Items: []*domain.Job{{ID: "old"}}}
	assert.False(t, st.Fulfill(first, stale))

	got := st.State().Job
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, "new", got.Jobs[0].ID)
	assert.False(t, got.Loading)
}

func TestStaleRejectionIsDropped(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	_, first := st.Begin(context.Background(), store.OpGetConversation, "application/conversation")
	_, second := st.Begin(context.Background(), store.OpGetConversation, "application/conversation")

	assert.False(t, st.Reject(first, "context canceled"))
	assert.Empty(t, st.State().Application.Error)
	assert.True(t, st.State().Application.MessageLoading)

	assert.True(t, st.Fulfill(second, &domain.Conversation{ApplicationID: "A1"}))
	assert.False(t, st.State().Application.MessageLoading)
}

func TestDifferentLanesCommitIndependently(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	_, list := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")
	_, detail := st.Begin(context.Background(), store.OpGetJobByID, "job/current")

	assert.True(t, st.Fulfill(detail, &domain.Job{ID: "J1"}))
	assert.True(t, st.Fulfill(list, &domain.Page[*domain.Job]{Items: []*domain.Job{{ID: "J1"}, {ID: "J2"}}}))

	got := st.State().Job
	assert.Equal(t, "J1", got.CurrentJob.ID)
	assert.Len(t, got.Jobs, 2)
}

func TestFinishedLanesAreReleased(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	for _, id := range []string{"J1", "J2", "J3"} {
		_, req := st.Begin(context.Background(), store.OpSaveJob, "job/save:"+id)
		assert.True(t, st.Fulfill(req, id))
	}
	assert.Zero(t, st.InFlight())

	t.Run("Should keep a superseded request stale after its lane is reused", func(t *testing.T) {
		_, old := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")
		_, newer := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")
		assert.Equal(t, 1, st.InFlight())
		assert.True(t, st.Fulfill(newer, &domain.Page[*domain.Job]{Items: []*domain.Job{{ID: "new"}}}))

		_, reused := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")
		assert.False(t, st.Fulfill(old, &domain.Page[*domain.Job]{Items: []*domain.Job{{ID: "old"}}}))
		assert.True(t, st.Fulfill(reused, &domain.Page[*domain.Job]{Items: []*domain.Job{{ID: "latest"}}}))

		assert.Equal(t, "latest", st.State().Job.Jobs[0].ID)
		assert.Zero(t, st.InFlight())
	})
}

func TestUntrackedLaneNeverGoesStale(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	_, a := st.Begin(context.Background(), store.OpSendMessage, "")
	_, b := st.Begin(context.Background(), store.OpSendMessage, "")

	assert.True(t, st.Fulfill(a, &domain.SentMessage{ApplicationID: "A1"}))
	assert.True(t, st.Fulfill(b, &domain.SentMessage{ApplicationID: "A1"}))
}

func TestSubscribersSeeEveryDispatch(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	var mu sync.Mutex
	var seen []bool
	unsubscribe := st.Subscribe(func(s store.State) {
		mu.Lock()
		seen = append(seen, s.Job.Loading)
		mu.Unlock()
	})

	_, req := st.Begin(context.Background(), store.OpGetAllJobs, "job/list")
	st.Fulfill(req, &domain.Page[*domain.Job]{})
	unsubscribe()
	st.Dispatch(store.ClearError{Target: store.SliceJob})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, seen)
}

func TestConcurrentDispatchIsSerialized(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, req := st.Begin(context.Background(), store.OpApplyForJob, "")
			st.Fulfill(req, &domain.Application{ID: "A"})
		}()
	}
	wg.Wait()

	assert.Len(t, st.State().Application.MyApplications, 50)
}
