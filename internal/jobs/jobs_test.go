package jobs_test

import (
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionly/internal/jobs"
	"visionly/internal/promptcache"
	"visionly/internal/reports"
	"visionly/internal/testsupport"
)

type stubPruner struct {
	calls int32
	err   error
}

func (s *stubPruner) Cleanup() (int64, error) {
	atomic.AddInt32(&s.calls, 1)
	return 0, s.err
}

type stubPromptPruner struct {
	calls int32
	err   error
}

func (s *stubPromptPruner) Cleanup() (int, error) {
	atomic.AddInt32(&s.calls, 1)
	return 0, s.err
}

func TestCleanupJobPrunesExpiredReports(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	cache := reports.NewCache(db, time.Hour, testsupport.GetLogger())

	prompts, err := promptcache.Open(
		filepath.Join(t.TempDir(), "prompts.db"), time.Hour, testsupport.GetLogger())
	require.NoError(t, err)
	t.Cleanup(func() { prompts.Close() })

	expired := reports.CachedReport{
		Key:       "expired-key",
		Kind:      "platforms",
		Payload:   []byte("{}"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, cache.Store("live-key", "platforms", map[string]int{"sessions": 1}))

	job := jobs.NewCleanupJob(cache, prompts, testsupport.GetLogger())
	require.NoError(t, job.Run())

	var remaining int64
	require.NoError(t, db.Model(&reports.CachedReport{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	var keys []string
	require.NoError(t, db.Model(&reports.CachedReport{}).Pluck("key", &keys).Error)
	assert.Equal(t, []string{"live-key"}, keys)
}

func TestCleanupJobRunsBothStoresDespiteFailure(t *testing.T) {
	cacheStub := &stubPruner{err: errors.New("cache locked")}
	promptStub := &stubPromptPruner{err: errors.New("store closed")}

	job := jobs.NewCleanupJob(cacheStub, promptStub, testsupport.GetLogger())
	err := job.Run()

	require.Error(t, err)
	assert.ErrorContains(t, err, "cache locked")
	assert.ErrorContains(t, err, "store closed")
	assert.Equal(t, int32(1), atomic.LoadInt32(&cacheStub.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&promptStub.calls))
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	cacheStub := &stubPruner{}
	promptStub := &stubPromptPruner{}
	job := jobs.NewCleanupJob(cacheStub, promptStub, testsupport.GetLogger())

	scheduler := jobs.NewScheduler(job, 10*time.Millisecond, testsupport.GetLogger())
	scheduler.Start()
	assert.True(t, scheduler.IsRunning())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&cacheStub.calls) >= 2
	}, time.Second, 5*time.Millisecond, "expected the initial pass plus at least one tick")

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())

	// Let any pass that was mid-flight at Stop finish before sampling.
	time.Sleep(20 * time.Millisecond)
	settled := atomic.LoadInt32(&promptStub.calls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt32(&promptStub.calls))
}

func TestSchedulerDisabledWithoutInterval(t *testing.T) {
	cacheStub := &stubPruner{}
	promptStub := &stubPromptPruner{}
	job := jobs.NewCleanupJob(cacheStub, promptStub, testsupport.GetLogger())

	scheduler := jobs.NewScheduler(job, 0, testsupport.GetLogger())
	scheduler.Start()
	defer scheduler.Stop()

	assert.False(t, scheduler.IsRunning())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&cacheStub.calls))
}
