// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"sync"
	"time"

	"ipsift/internal/platform/logx"
)

// Task representa una unidad de trabajo a ejecutar en el pool.
type Task interface {
	// Execute ejecuta la tarea
	Execute(ctx context.Context) error

	// Cancel marca la tarea como abandonada antes de ejecutarse.
	// El pool la invoca para tareas encoladas que nunca llegaron a correr.
	Cancel()

	// Name retorna el nombre de la tarea
	Name() string
}

// Result representa el resultado de una tarea completada.
type Result struct {
	Task     Task
	Error    error
	Duration time.Duration
}

// Pool ejecuta tareas en un número acotado de workers y entrega los
// resultados en orden de finalización, no de envío. Tras Stop, las tareas
// encoladas se abandonan (Cancel) y las in-flight terminan en silencio:
// sus resultados se descartan, nunca se mata un worker a mitad de tarea.
type Pool struct {
	workers int
	logger  logx.Logger

	// Channels
	queue   chan Task
	results chan Result

	// Control
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// Config configura el pool.
type Config struct {
	Workers int
	Logger  logx.Logger
}

// New crea un pool sin arrancar; Run lo pone en marcha con sus tareas.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: cfg.Workers,
		logger:  cfg.Logger.With("component", "worker-pool"),
		results: make(chan Result, cfg.Workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Run encola todas las tareas y arranca los workers.
// La cola queda cerrada: los workers terminan al drenarla o al cancelarse el pool.
func (p *Pool) Run(tasks []Task) {
	p.queue = make(chan Task, len(tasks))
	for _, t := range tasks {
		p.queue <- t
	}
	close(p.queue)

	workers := p.workers
	if len(tasks) < workers {
		workers = len(tasks)
	}

	p.logger.Debug("starting pool", "workers", workers, "tasks", len(tasks))

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Results retorna el canal de resultados en orden de finalización.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// worker procesa tareas hasta drenar la cola.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.queue {
		// Pool cancelado: la tarea encolada se abandona sin ejecutar.
		if p.ctx.Err() != nil {
			task.Cancel()
			continue
		}
		p.execute(id, task)
	}
	p.logger.Debug("worker drained queue", "worker_id", id)
}

// execute corre una tarea y publica su resultado.
func (p *Pool) execute(workerID int, task Task) {
	start := time.Now()
	err := task.Execute(p.ctx)
	duration := time.Since(start)

	p.logger.Debug("task completed",
		"worker_id", workerID,
		"task", task.Name(),
		"duration_ms", duration.Milliseconds(),
		"error", err != nil,
	)

	select {
	case p.results <- Result{Task: task, Error: err, Duration: duration}:
	case <-p.ctx.Done():
		// Pool detenido: el veredicto llegó tarde y se descarta.
	}
}

// Stop cancela el trabajo pendiente y espera a que los workers in-flight
// terminen. Idempotente. No cierra el canal de resultados a mitad de envío.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		close(p.results)
		p.logger.Debug("pool stopped")
	})
}
