// Package ui holds the small line-mode output pieces used by commands that
// don't take over the screen, like the connection check in 'plcdash init'.
//
//	s := ui.NewSpinner("Checking opc.tcp://10.0.0.5:4840", os.Stdout)
//	s.Start()
//	// ... do work ...
//	s.Success("12 values") // or s.Fail(msg) or s.Warn(msg)
package ui
