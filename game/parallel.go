package game

import (
	"sync"

	"github.com/pthm-cable/pointfield/components"
	"github.com/pthm-cable/pointfield/systems"
)

// workKind selects the kernel a chunk runs.
type workKind int

const (
	workSeed workKind = iota
	workUpdate
)

// workChunk represents a range of particles for a worker to process.
// Every chunk of one dispatch carries the same uniform snapshot.
type workChunk struct {
	start, end int
	kind       workKind
	uniforms   components.Uniforms
}

// workerScratch holds per-worker event counts, summed after the join.
type workerScratch struct {
	counts systems.StepCounts
}

// parallelState holds the kernel worker pool.
type parallelState struct {
	scratches  []workerScratch
	numWorkers int
	threshold  int // below this particle count, dispatch runs inline

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(numWorkers, threshold int) *parallelState {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &parallelState{
		numWorkers: numWorkers,
		threshold:  threshold,
		scratches:  make([]workerScratch, numWorkers),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.runChunk(chunk, scratch)
			p.doneChan <- struct{}{}
		}
	}
}

// dispatch runs one kernel over every particle index and returns once all
// indices are done. Chunks cover disjoint index ranges, so workers never
// write the same element.
func (g *Game) dispatch(kind workKind, u components.Uniforms) systems.StepCounts {
	p := g.parallel
	n := g.particles.Len()
	if n == 0 {
		return systems.StepCounts{}
	}

	for i := range p.scratches {
		p.scratches[i].counts = systems.StepCounts{}
	}

	// Single-threaded for small populations
	if n < p.threshold || p.numWorkers == 1 {
		scratch := &p.scratches[0]
		g.runChunk(workChunk{start: 0, end: n, kind: kind, uniforms: u}, scratch)
		return scratch.counts
	}

	g.computeParallel(n, kind, u)

	var total systems.StepCounts
	for i := range p.scratches {
		total.Add(p.scratches[i].counts)
	}
	return total
}

// computeParallel dispatches work to the worker pool.
func (g *Game) computeParallel(n int, kind workKind, u components.Uniforms) {
	p := g.parallel
	if !p.running {
		p.startWorkers(g)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end, kind: kind, uniforms: u}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// runChunk applies the chunk's kernel to [start, end).
func (g *Game) runChunk(c workChunk, scratch *workerScratch) {
	switch c.kind {
	case workSeed:
		g.seed.Run(g.particles, c.start, c.end)
	case workUpdate:
		scratch.counts.Add(g.update.Run(g.particles, c.start, c.end, c.uniforms))
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
