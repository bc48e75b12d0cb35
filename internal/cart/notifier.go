package cart

type EventKind string

const (
	EventAdded           EventKind = "added"
	EventQuantityUpdated EventKind = "quantity-updated"
	EventRemoved         EventKind = "removed"
	EventCleared         EventKind = "cleared"
)

// Event describes one cart mutation for a toast/alert presenter or a message bus.
// ItemID and ItemName are empty for EventCleared.
type Event struct {
	Kind     EventKind `json:"kind"`
	ItemID   string    `json:"itemId,omitempty"`
	ItemName string    `json:"itemName,omitempty"`
	Quantity int       `json:"quantity"`
}

type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Recorder keeps every event it is notified of, in order.
type Recorder struct {
	events []Event
}

func (r *Recorder) Notify(e Event) {
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Reset() {
	r.events = nil
}
