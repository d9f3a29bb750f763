package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/pkg/async"
)

func TestPoolExecutesAllTasks(t *testing.T) {
	var tasks []async.Task[int]
	for i := 0; i < 20; i++ {
		i := i
		tasks = append(tasks, async.Task[int]{
			Name:    fmt.Sprintf("task-%d", i),
			Execute: func(context.Context) (int, error) { return i * 2, nil },
		})
	}

	results := async.NewPool[int](4).Execute(context.Background(), tasks)
	require.Len(t, results, 20)
	assert.Equal(t, 14, results["task-7"].Data)
	assert.NoError(t, results["task-7"].Err)
}

func TestPoolReportsTaskErrors(t *testing.T) {
	boom := errors.New("boom")
	results := async.NewPool[string](2).Execute(context.Background(), []async.Task[string]{
		{Name: "ok", Execute: func(context.Context) (string, error) { return "fine", nil }},
		{Name: "bad", Execute: func(context.Context) (string, error) { return "", boom }},
	})

	assert.NoError(t, results["ok"].Err)
	assert.ErrorIs(t, results["bad"].Err, boom)
}

func TestPoolStopsFeedingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var started atomic.Int32
	var tasks []async.Task[struct{}]
	for i := 0; i < 100; i++ {
		tasks = append(tasks, async.Task[struct{}]{
			Name: fmt.Sprintf("t%d", i),
			Execute: func(context.Context) (struct{}, error) {
				if started.Add(1) == 1 {
					cancel()
				}
				return struct{}{}, nil
			},
		})
	}

	results := async.NewPool[struct{}](1).Execute(ctx, tasks)
	assert.Less(t, len(results), 100, "cancellation stops the feed early")
}
