package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/anima/engine/core"
)

/**
 * @brief Describes a job to be run by the job system.
 */
type JobTask struct {
	/** @brief The work to execute on a worker. Required. */
	OnStart func() (interface{}, error)
	/** @brief Invoked with the result when OnStart succeeds. Optional. */
	OnComplete func(result interface{})
	/** @brief Invoked with the error when OnStart fails. Optional. */
	OnFailure func(err error)
	/** @brief Invoked after OnComplete or OnFailure. Optional. */
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	defer func() {
		if job.OnCompletionCallback != nil {
			job.OnCompletionCallback()
		}
	}()

	result, err := safeStart(job.OnStart)
	if err != nil {
		core.LogError("job failed: %s", err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete(result)
	}
}

func safeStart(fn func() (interface{}, error)) (result interface{}, err error) {
	if fn == nil {
		return nil, errors.New("job has no entry point")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return fn()
}

/**
 * @brief Shuts the job system down. Queued jobs still run before it returns.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

// Workers returns the size of the pool.
func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Submits the provided job to be queued for execution.
 * Blocks while the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- jt
	return nil
}
