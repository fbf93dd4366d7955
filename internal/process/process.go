// Package process cleans up browser processes left behind by a snapshot.
package process

// Terminate kills pid and every child it spawned. It is best effort: the
// launcher's own Kill runs afterwards as a fallback. Non-positive pids are
// ignored, since 0 and negatives would target the caller's process group.
func Terminate(pid int) {
	if pid <= 0 {
		return
	}
	killTree(pid)
}
