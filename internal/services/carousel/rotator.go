package carousel

import (
	"slices"
	"sync"
	"time"
)

type loop struct {
	done   chan struct{}
	exited chan struct{}
}

// Rotator cycles through an image list on a fixed interval.
type Rotator struct {
	interval time.Duration

	ctrl    sync.Mutex
	mu      sync.Mutex
	images  []string
	index   int
	loop    *loop
	stopped bool
	updates chan string
}

func NewRotator(interval time.Duration) *Rotator {
	return &Rotator{
		interval: interval,
		updates:  make(chan string, 1),
	}
}

// SetImages swaps the list. A list equal to the current one is ignored;
// otherwise the timer restarts and the index goes back to 0. Lists with one
// image or none do not tick.
func (r *Rotator) SetImages(images []string) {
	r.ctrl.Lock()
	defer r.ctrl.Unlock()

	r.mu.Lock()
	if r.stopped || (r.images != nil && slices.Equal(r.images, images)) {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.stopLoop()

	r.mu.Lock()
	r.images = append([]string{}, images...)
	r.index = 0
	current := r.currentLocked()
	r.mu.Unlock()
	if current != "" {
		r.publish(current)
	}
	if len(images) > 1 && r.interval > 0 {
		r.startLoop()
	}
}

func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked()
}

func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

func (r *Rotator) currentLocked() string {
	if len(r.images) == 0 {
		return ""
	}
	return r.images[r.index]
}

// Updates delivers the current image after every change. Only the latest
// value is kept for a slow reader. The channel is closed by Stop.
func (r *Rotator) Updates() <-chan string {
	return r.updates
}

// Stop tears the timer down. It is idempotent.
func (r *Rotator) Stop() {
	r.ctrl.Lock()
	defer r.ctrl.Unlock()
	r.stopLoop()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	close(r.updates)
}

func (r *Rotator) startLoop() {
	l := &loop{done: make(chan struct{}), exited: make(chan struct{})}
	r.mu.Lock()
	r.loop = l
	r.mu.Unlock()
	go func() {
		defer close(l.exited)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.done:
				return
			case <-ticker.C:
				r.mu.Lock()
				r.index = (r.index + 1) % len(r.images)
				current := r.images[r.index]
				r.mu.Unlock()
				r.publish(current)
			}
		}
	}()
}

// stopLoop ends the running loop and waits for it. Callers hold ctrl.
func (r *Rotator) stopLoop() {
	r.mu.Lock()
	l := r.loop
	r.loop = nil
	r.mu.Unlock()
	if l == nil {
		return
	}
	close(l.done)
	<-l.exited
}

func (r *Rotator) publish(image string) {
	select {
	case r.updates <- image:
		return
	default:
	}
	select {
	case <-r.updates:
	default:
	}
	select {
	case r.updates <- image:
	default:
	}
}
