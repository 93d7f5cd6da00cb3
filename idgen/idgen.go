// Package idgen generates the IDs of content units.
package idgen

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

var (
	generatorMutex        sync.Mutex
	generatorInstantiated bool
	generator             Generator
)

// Generator can generate IDs
type Generator interface {
	// Generate an ID
	Generate() string
}

// UseSequentialGenerator configures the process-wide generator to generate
// sequential IDs.
func UseSequentialGenerator() {
	use(&sequentialGenerator{})
}

// UseParallelGenerator configures the process-wide generator to generate
// globally unique IDs. The IDs generated are not deterministic anymore.
func UseParallelGenerator() {
	use(parallelGenerator{})
}

func use(g Generator) {
	generatorMutex.Lock()
	defer generatorMutex.Unlock()

	if generatorInstantiated {
		panic("cannot change id generator type after using it")
	}

	generator = g
	generatorInstantiated = true
}

// Get returns the process-wide generator. It defaults to the sequential
// generator.
func Get() Generator {
	generatorMutex.Lock()
	defer generatorMutex.Unlock()

	if !generatorInstantiated {
		generator = &sequentialGenerator{}
		generatorInstantiated = true
	}

	return generator
}

// NewSequential returns a sequential generator whose first ID is "1",
// independent of the process-wide generator.
func NewSequential() Generator {
	return &sequentialGenerator{}
}

// NewParallel returns an xid based generator.
func NewParallel() Generator {
	return parallelGenerator{}
}

type sequentialGenerator struct {
	nextID uint64
}

func (g *sequentialGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(idNumber, 10)
}

type parallelGenerator struct{}

func (parallelGenerator) Generate() string {
	return xid.New().String()
}
