package port

// Scheduler runs work on the single UI thread.
// Post is safe to call from any goroutine.
type Scheduler interface {
	Post(fn func())
}
