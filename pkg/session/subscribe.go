package session

// subscriber delivers the latest session to one callback. Notifications
// coalesce, so a slow callback skips intermediate states but always ends
// on the current one.
type subscriber struct {
	fn      func(Session)
	pending chan struct{}
	done    chan struct{}
	exited  chan struct{}
}

// Subscribe calls fn with the current session now and after every change,
// from a goroutine owned by the subscription. A zero Session means logged
// out. Calls for one subscription never overlap. The returned func
// unsubscribes and waits for any running call to finish; it must not be
// called from inside fn.
func (c *Controller) Subscribe(fn func(Session)) (unsubscribe func()) {
	s := &subscriber{
		fn:      fn,
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = s
	c.mu.Unlock()

	go s.run(c)
	s.poke()

	return func() {
		c.mu.Lock()
		_, ok := c.subs[id]
		delete(c.subs, id)
		c.mu.Unlock()
		if ok {
			s.stop()
		}
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	subs := make([]*subscriber, 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s.poke()
	}
}

func (s *subscriber) poke() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

func (s *subscriber) stop() {
	close(s.done)
	<-s.exited
}

func (s *subscriber) run(c *Controller) {
	defer close(s.exited)
	for {
		select {
		case <-s.done:
			return
		case <-s.pending:
			sess, _ := c.Current()
			s.fn(sess)
		}
	}
}
