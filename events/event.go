package events

import "reflect"

// Event is the interface every round event must implement.
type Event interface {
	EventName() string // Returns a unique name for the event type
}

// GetRoundID extracts the RoundID field from an event, or "" when absent.
func GetRoundID(event Event) string {
	val := reflect.ValueOf(event)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	field := val.FieldByName("RoundID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}
