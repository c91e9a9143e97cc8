package sim

import "sort"

type ResizeFunc func(w, h float64)

type PointerFunc func(x, y float64)

// Bus carries host-level events (viewport resize, pointer movement) to the
// fields that subscribed to them. Every subscription returns a cancel func
// that a field calls on teardown.
type Bus struct {
	next    int
	width   float64
	height  float64
	resize  map[int]ResizeFunc
	pointer map[int]PointerFunc
}

func NewBus(w, h float64) *Bus {
	return &Bus{
		width:   w,
		height:  h,
		resize:  make(map[int]ResizeFunc),
		pointer: make(map[int]PointerFunc),
	}
}

func (b *Bus) Size() (float64, float64) { return b.width, b.height }

func (b *Bus) OnResize(fn ResizeFunc) (cancel func()) {
	b.next++
	id := b.next
	b.resize[id] = fn
	return func() { delete(b.resize, id) }
}

func (b *Bus) OnPointer(fn PointerFunc) (cancel func()) {
	b.next++
	id := b.next
	b.pointer[id] = fn
	return func() { delete(b.pointer, id) }
}

// Resize records the new viewport size and notifies listeners in
// subscription order.
func (b *Bus) Resize(w, h float64) {
	b.width, b.height = w, h
	for _, id := range sortedKeys(b.resize) {
		b.resize[id](w, h)
	}
}

func (b *Bus) Pointer(x, y float64) {
	for _, id := range sortedKeys(b.pointer) {
		b.pointer[id](x, y)
	}
}

// Listeners returns the number of live subscriptions.
func (b *Bus) Listeners() int {
	return len(b.resize) + len(b.pointer)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
