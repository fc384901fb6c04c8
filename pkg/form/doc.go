// Package form implements a framework-free form validation engine. A Registry
// declares fields and their ordered rule sets, a FormState holds the current
// values with touched/dirty flags and the per-field error map, the Evaluator
// runs rules (first failure wins), and the Engine processes change, blur and
// submit events. Submit always counts an attempt; once the count exceeds the
// lockout threshold the engine locks for good. Accepted submissions are
// handed to a SubmitSink as an immutable Snapshot.
package form
