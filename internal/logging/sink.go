package logging

// EventSink adapts a Logger to internal/events.MessageSink, logging
// scripted "message" events at info level with the event id as a field.
// This is the decided home for the Open Question in spec.md §9: message
// events are an operator-diagnostic side channel, never part of the
// replay or MC output trees.
type EventSink struct {
	Log Logger
}

// Message implements events.MessageSink.
func (s EventSink) Message(eventID, eventName, text string) {
	if s.Log == nil {
		return
	}
	s.Log.WithField("event", eventID).WithField("name", eventName).Info(text)
}
