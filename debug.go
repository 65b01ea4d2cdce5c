package gadget

import (
	"fmt"
	"os"
)

// debugCheckDisposed panics with a descriptive message when a disposed panel
// is used in a tree operation. Only called when the desktop is in debug mode;
// in release mode callers skip this entirely.
func debugCheckDisposed(p *Panel, op string) {
	if p.disposed {
		panic(fmt.Sprintf("gadget debug: %s on disposed panel %q (ID was %d)", op, p.Name, p.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
// Desktop trees are shallow (root → widget chrome → envelope); anything deep
// indicates a reparenting bug.
const debugMaxTreeDepth = 16

func debugCheckTreeDepth(p *Panel) {
	depth := 0
	for n := p; n != nil; n = n.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[gadget] warning: tree depth %d exceeds %d (panel %q)\n",
			depth, debugMaxTreeDepth, p.Name)
	}
}
