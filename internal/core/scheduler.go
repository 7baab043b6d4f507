package core

// ActionOwner is anything that can direct an actor's motion and be told to
// stand down when something else takes over.
type ActionOwner interface {
	Cancel()
}

// Scheduler tracks the single ActionOwner currently controlling an actor.
// It is not safe for concurrent use; each actor is driven from one goroutine.
type Scheduler struct {
	current ActionOwner
}

// StartAction hands the actor to owner. The previous owner, if any and if
// different, is cancelled first. A nil owner leaves the actor uncontrolled.
func (s *Scheduler) StartAction(owner ActionOwner) {
	if s.current == owner {
		return
	}

	if s.current != nil {
		s.current.Cancel()
	}

	s.current = owner
}

// CancelCurrentAction cancels whoever controls the actor, if anyone.
func (s *Scheduler) CancelCurrentAction() {
	s.StartAction(nil)
}

// Current returns the owner controlling the actor, or nil.
func (s *Scheduler) Current() ActionOwner {
	return s.current
}

// Target is an actor that can be chased and hit.
type Target interface {
	Position() Vec3
	IsAlive() bool
	TakeDamage(amount float64)
}
