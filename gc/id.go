package gc

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// An IDSource hands out the monotonically increasing id of the running
// collection. Worker and pause trace events are tagged with it.
type IDSource struct {
	id atomic.Uint64
}

// Current returns the id of the collection that is currently running, or the
// id of the last finished collection if none is running.
func (s *IDSource) Current() uint64 {
	return s.id.Load()
}

// Advance moves to the next collection id and returns it.
func (s *IDSource) Advance() uint64 {
	return s.id.Add(1)
}

var rowIDGeneratorMutex sync.Mutex
var rowIDGeneratorInstantiated bool
var rowIDGenerator RowIDGenerator

// RowIDGenerator can generate ids for trace rows.
type RowIDGenerator interface {
	// Generate an ID
	Generate() string
}

// UseSequentialRowIDGenerator configures the row-id generator to generate ids
// sequentially. Sequential ids keep trace databases reproducible.
func UseSequentialRowIDGenerator() {
	rowIDGeneratorMutex.Lock()
	defer rowIDGeneratorMutex.Unlock()

	if rowIDGeneratorInstantiated {
		log.Panic("cannot change row-id generator type after using it")
	}

	rowIDGenerator = &sequentialRowIDGenerator{}
	rowIDGeneratorInstantiated = true
}

// UseParallelRowIDGenerator configures the row-id generator to generate ids
// concurrently. The ids generated will not be deterministic anymore.
func UseParallelRowIDGenerator() {
	rowIDGeneratorMutex.Lock()
	defer rowIDGeneratorMutex.Unlock()

	if rowIDGeneratorInstantiated {
		log.Panic("cannot change row-id generator type after using it")
	}

	rowIDGenerator = &parallelRowIDGenerator{}
	rowIDGeneratorInstantiated = true
}

// GetRowIDGenerator returns the row-id generator in use. Defaults to the
// parallel generator.
func GetRowIDGenerator() RowIDGenerator {
	rowIDGeneratorMutex.Lock()
	defer rowIDGeneratorMutex.Unlock()

	if !rowIDGeneratorInstantiated {
		rowIDGenerator = &parallelRowIDGenerator{}
		rowIDGeneratorInstantiated = true
	}

	return rowIDGenerator
}

type sequentialRowIDGenerator struct {
	mu   sync.Mutex
	next uint64
}

func (g *sequentialRowIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := strconv.FormatUint(g.next, 10)
	g.next++

	return id
}

type parallelRowIDGenerator struct{}

func (g *parallelRowIDGenerator) Generate() string {
	return xid.New().String()
}
