package pool

// Pool is an interface that defines methods on a pool of reusable objects.
type Pool interface {
	// Get returns an object from the pool.
	Get() interface{}

	// Put returns an object back to the pool.
	Put(interface{})
}
