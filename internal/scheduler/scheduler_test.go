package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	failures int
	calls    int
	lastURLs []string
}

func (f *fakeSubmitter) Resolve(paths ...string) []string {
	urls := make([]string, len(paths))
	for i, p := range paths {
		urls[i] = "https://gego.ai/" + strings.TrimLeft(p, "/")
	}
	return urls
}

func (f *fakeSubmitter) Submit(ctx context.Context, urls []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastURLs = urls
	if f.calls <= f.failures {
		return 500, errors.New("temporary failure")
	}
	return 200, nil
}

type fakePosts struct {
	slugs []string
	err   error
}

func (f fakePosts) Slugs() ([]string, error) {
	return f.slugs, f.err
}

func TestURLs(t *testing.T) {
	s := New(&fakeSubmitter{}, fakePosts{slugs: []string{"launch", "geo-101"}}, []string{"/", "/pricing"}, "@daily")

	urls, err := s.URLs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://gego.ai/",
		"https://gego.ai/pricing",
		"https://gego.ai/blog/launch",
		"https://gego.ai/blog/geo-101",
	}, urls)
}

func TestURLs_PostError(t *testing.T) {
	s := New(&fakeSubmitter{}, fakePosts{err: errors.New("disk")}, []string{"/"}, "@daily")

	_, err := s.URLs()
	assert.Error(t, err)
}

func TestExecuteNow_Retries(t *testing.T) {
	sub := &fakeSubmitter{failures: 2}
	s := New(sub, nil, []string{"/"}, "@daily")
	s.RetryDelay = 0

	n, err := s.ExecuteNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, sub.calls)
}

func TestExecuteNow_GivesUp(t *testing.T) {
	sub := &fakeSubmitter{failures: 10}
	s := New(sub, nil, []string{"/"}, "@daily")
	s.MaxRetries = 2
	s.RetryDelay = 0

	_, err := s.ExecuteNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, sub.calls)
}

func TestExecuteNow_NothingToSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	n, err := New(sub, nil, nil, "@daily").ExecuteNow(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, sub.calls)
}

func TestStartStop(t *testing.T) {
	s := New(&fakeSubmitter{}, nil, []string{"/"}, "0 6 * * *")

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Running())
	assert.Error(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.Running())
	s.Stop()
}

func TestStart_InvalidCron(t *testing.T) {
	s := New(&fakeSubmitter{}, nil, []string{"/"}, "not a cron")
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.Running())
}
