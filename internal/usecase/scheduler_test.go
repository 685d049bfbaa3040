package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAutomation/internal/domain"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (d *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	d.job = job
	return nil
}

func (d *manualDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerRunsPipelineOnTrigger(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	driver := &manualDriver{}
	pipeline := NewPipeline(PipelineDeps{Generator: &topicGenerator{}, Repository: repo})
	sched := NewScheduler(driver, pipeline, func() domain.Settings { return seedSettings() }, 2)

	require.NoError(t, sched.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(time.Now())
	assert.Equal(t, 2, repo.insertions)

	require.NoError(t, sched.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerWithoutDriverIsNoop(t *testing.T) {
	t.Parallel()

	sched := NewScheduler(nil, nil, nil, 1)
	assert.NoError(t, sched.Start(context.Background()))
	assert.NoError(t, sched.Stop(context.Background()))
}

// blockingGenerator holds every generation call until release is closed.
type blockingGenerator struct {
	topicGenerator
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) Complete(ctx context.Context, apiKey, system, userPrompt string) (string, error) {
	g.started <- struct{}{}
	<-g.release
	return g.topicGenerator.Complete(ctx, apiKey, system, userPrompt)
}

func TestTryRunRejectsOverlap(t *testing.T) {
	t.Parallel()

	gen := &blockingGenerator{started: make(chan struct{}, 1), release: make(chan struct{})}
	pipeline := NewPipeline(PipelineDeps{Generator: gen, Repository: &memoryRepository{}})

	done := make(chan domain.RunResult)
	go func() {
		result, ok := pipeline.TryRun(context.Background(), seedSettings(), 1)
		assert.True(t, ok)
		done <- result
	}()
	<-gen.started

	_, ok := pipeline.TryRun(context.Background(), seedSettings(), 1)
	assert.False(t, ok)

	close(gen.release)
	assert.Equal(t, 1, (<-done).Published)

	_, ok = pipeline.TryRun(context.Background(), seedSettings(), 0)
	assert.True(t, ok)
}

func TestSchedulerSkipsTickWhileRunInProgress(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	gen := &blockingGenerator{started: make(chan struct{}, 1), release: make(chan struct{})}
	pipeline := NewPipeline(PipelineDeps{Generator: gen, Repository: repo})
	driver := &manualDriver{}
	sched := NewScheduler(driver, pipeline, func() domain.Settings { return seedSettings() }, 1)
	require.NoError(t, sched.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		_, _ = pipeline.TryRun(context.Background(), seedSettings(), 1)
		close(done)
	}()
	<-gen.started

	// Returns at once; an unguarded run would block on the held generator.
	driver.job(time.Now())
	assert.Empty(t, gen.started)

	close(gen.release)
	<-done
	assert.Equal(t, 1, repo.insertions)
}
