// Package main provides the developer harness for the overlay subsystem: it
// opens a GTK anchor surface and shows a popup through the real
// host/positioner path.
package main

func main() {
	Execute()
}
