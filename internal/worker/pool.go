package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Job is a unit of publish work. Jobs are self-contained: everything needed
// to run is carried by the job value.
type Job interface {
	Execute() error
	ID() string
}

// Worker pulls jobs from its own channel, registering that channel with the
// dispatcher's pool whenever it is free.
type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Quit       chan bool
	Wg         *sync.WaitGroup
	Logger     *logrus.Logger
}

// NewWorker creates a new Worker bound to the dispatcher's pool.
func NewWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, logger *logrus.Logger) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Quit:       make(chan bool),
		Wg:         wg,
		Logger:     logger,
	}
}

// Start makes the Worker listen for jobs on its JobChannel.
func (w Worker) Start() {
	w.Wg.Add(1)
	go func() {
		defer w.Wg.Done()
		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Infof("Worker %d: started job %s", w.ID, job.ID())
				if err := job.Execute(); err != nil {
					// No retry here: a failed publish stays pending and is
					// picked up again by the next drain or a re-submit.
					w.Logger.Errorf("Worker %d: job %s failed: %v", w.ID, job.ID(), err)
				} else {
					w.Logger.Infof("Worker %d: finished job %s", w.ID, job.ID())
				}
			case <-w.Quit:
				w.Logger.Infof("Worker %d: stopping", w.ID)
				return
			}
		}
	}()
}

// Stop signals the worker to stop after its current job.
func (w Worker) Stop() {
	go func() {
		w.Quit <- true
	}()
}

// Dispatcher fans publish jobs out over a fixed pool of workers. Jobs for
// the same subdomain are not serialized; the publish pipeline is idempotent
// so concurrent runs converge (last writer wins).
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job
	JobQueue   chan Job
	Workers    []Worker
	Wg         sync.WaitGroup
	Quit       chan bool
	Logger     *logrus.Logger
}

// NewDispatcher creates a Dispatcher with the given pool size and queue depth.
func NewDispatcher(maxWorkers int, jobQueueSize int, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		Quit:       make(chan bool),
		Logger:     logger,
	}
}

// Run starts the workers and the dispatch loop.
func (d *Dispatcher) Run() {
	d.Logger.Infof("Dispatcher starting with %d workers", d.MaxWorkers)
	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d.WorkerPool, &d.Wg, d.Logger)
		d.Workers = append(d.Workers, worker)
		worker.Start()
	}

	go d.dispatch()
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.JobQueue:
			go func(job Job) {
				jobChannel := <-d.WorkerPool
				jobChannel <- job
			}(job)
		case <-d.Quit:
			d.Logger.Info("Dispatcher: stopping dispatch loop")
			return
		}
	}
}

// Submit queues a job without blocking. A full queue drops the job; the
// pending status in the database means nothing is lost, only delayed.
func (d *Dispatcher) Submit(job Job) bool {
	select {
	case d.JobQueue <- job:
		d.Logger.Infof("Dispatcher: job %s submitted", job.ID())
		return true
	default:
		d.Logger.Warnf("Dispatcher: job queue full, job %s dropped", job.ID())
		return false
	}
}

// Stop shuts down the dispatch loop and waits for workers to finish their
// current jobs.
func (d *Dispatcher) Stop() {
	d.Logger.Info("Dispatcher: initiating shutdown")
	d.Quit <- true

	for _, worker := range d.Workers {
		worker.Stop()
	}

	d.Wg.Wait()
	d.Logger.Info("Dispatcher: shutdown complete")
}
