// Package worker runs a unit of work on a background goroutine and surfaces
// its result to the goroutine that joins it.
//
// A failure inside the work, whether a returned error or a panic, is never
// logged or dropped: it is held until Join or Wait and returned there. The
// outcome is only visible after the worker has finished, and it is exactly one
// of a value or an error.
//
//	w := worker.Go(func() (string, error) {
//		return util.GetFileHash(path)
//	})
//	hash, err := w.Join(time.Minute)
//
// There is no way to cancel a running worker; a timed out Join leaves it
// running.
package worker
