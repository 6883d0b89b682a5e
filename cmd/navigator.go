package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/myservicehub/ServiceHub-sub004/gateway"
)

// sessionNotice satisfies gateway.Navigator for a terminal client. There is
// no login page to land on, so "navigating" to an entry point prints how to
// sign in again. The gateway checks the current location before navigating,
// which keeps repeated terminations from printing twice.
type sessionNotice struct {
	out      io.Writer
	location string
}

func (n *sessionNotice) Location() string { return n.location }

func (n *sessionNotice) Navigate(path string) {
	n.location = path
	w := n.out
	if w == nil {
		w = os.Stderr
	}
	if path == gateway.AdminEntryPath {
		fmt.Fprintln(w, "Admin session ended. Run `servicehub admin login` to sign in again.")
		return
	}
	fmt.Fprintln(w, "Session ended. Run `servicehub login` to sign in again.")
}
