package input

import "sync"

type Listener func(*KeyEvent)

// Dispatcher is the process-wide key listener registry. The UI feeds every
// key press into Dispatch.
type Dispatcher struct {
	mu        sync.Mutex
	seq       int
	listeners []registration
}

type registration struct {
	id int
	fn Listener
}

func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Register adds l and returns the func that removes it again. Calling the
// returned func more than once is harmless.
func (d *Dispatcher) Register(l Listener) func() {
	d.mu.Lock()
	d.seq++
	id := d.seq
	d.listeners = append(d.listeners, registration{id: id, fn: l})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, reg := range d.listeners {
		if reg.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener in registration order.
func (d *Dispatcher) Dispatch(ev *KeyEvent) {
	if ev == nil {
		return
	}
	d.mu.Lock()
	snapshot := append([]registration(nil), d.listeners...)
	d.mu.Unlock()
	for _, reg := range snapshot {
		reg.fn(ev)
	}
}

func (d *Dispatcher) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
