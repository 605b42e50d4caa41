// Package events provides a small synchronous publish/subscribe bus keyed by
// scope id and event name.
//
// A scope is usually a component id; GlobalScope addresses listeners that want
// every event regardless of which component raised it.
//
//	bus := events.NewBus[*message.Message]()
//	id, _ := bus.Subscribe("form:email", "onmessage.formcheck", func(e events.Event[*message.Message]) {
//		if e.Payload == nil {
//			// clear previously shown message
//		}
//	})
//	defer bus.Unsubscribe(id)
package events
