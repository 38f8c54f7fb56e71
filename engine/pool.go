package engine

import (
	"sync"

	"github.com/sheikhrachel/hexlife/model"
)

// updatePool recycles pending-update maps between generations
type updatePool struct {
	pool sync.Pool
}

func newUpdatePool() *updatePool {
	return &updatePool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(updates)
			},
		},
	}
}

// Get retrieves an empty map from the pool
func (p *updatePool) Get() updates {
	return p.pool.Get().(updates)
}

// Put clears a map and returns it to the pool
func (p *updatePool) Put(u updates) {
	if u == nil {
		return
	}
	clear(u)
	p.pool.Put(u)
}

// updates maps edge positions to what happens to them this generation
type updates map[model.EdgePos]pending
