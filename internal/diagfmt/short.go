package diagfmt

import (
	"fmt"
	"io"

	"zephyr/internal/diag"
	"zephyr/internal/source"
)

// Short writes one line per diagnostic: path:line:col: SEV CODE: message.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		pos, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs.Get(d.Primary.File), fs, mode), pos.Line, pos.Col,
			d.Severity, d.Code.ID(), d.Message)
	}
}
