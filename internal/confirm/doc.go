// Package confirm provides the modal acknowledgement primitive.
//
// A collaborator that needs the user to acknowledge something (an error, a
// destructive action about to happen) calls Broker.Confirm and blocks on the
// returned request's Done channel. The modal surface renders Broker.Current
// and calls Broker.Dismiss on the acknowledgement key. Requests queue FIFO
// and are shown one at a time; none is dropped, and each completes exactly
// once.
//
// This is an acknowledgement primitive, not a yes/no decision: dismissal is
// the only outcome.
package confirm
