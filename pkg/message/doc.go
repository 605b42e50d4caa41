// Package message defines the Message payload exchanged between validators
// and message widgets, and the positional `{n}` template interpolation used to
// build it.
//
// Templates are split on every `{digits}` token. Each token is replaced by the
// display form of the matching entry in Values; missing entries become empty
// strings, so interpolation never fails:
//
//	msg := message.GetMessage(message.Message{
//		Summary: "Length must be between {0} and {1}",
//		Detail:  "{2}: length must be between {0} and {1}",
//	}, message.Indexed(3, 5, "username"))
package message
