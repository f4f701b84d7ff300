// Package thread runs functions on the main OS thread, which owns the
// window and the GL context.
// See: https://github.com/golang/go/wiki/LockOSThread
package thread

import "github.com/faiface/mainthread"

// Run is a wrapper for the main function. It returns when run finishes.
func Run(run func()) {
	mainthread.Run(run)
}

// Call queues f on the main thread and blocks until it finishes.
func Call(f func()) {
	mainthread.Call(f)
}

// CallErr is Call for functions returning an error.
func CallErr(f func() error) error {
	return mainthread.CallErr(f)
}
