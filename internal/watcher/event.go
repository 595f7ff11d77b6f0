package watcher

const (
	EventModified EventType = "modified"
	EventRemoved  EventType = "removed"
)

type EventType string
type EventsChannel <-chan Event

type Event struct {
	AbsPath string
	Type    EventType
}
