package dispatch

// Scheduler is anything that can run tasks on the loop.
type Scheduler interface {
	Submit(name string, t Task) (*Future, error)
}

var _ Scheduler = (*Loop)(nil)
