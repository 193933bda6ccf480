// refwatch is an interactive inspector for a hostref handle table.
//
// It seeds a table with sample referents and opens a TUI to browse, clone
// and drop handles, attach host info, and watch identity groups and
// lifecycle events live.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/wippyai/hostref"
	"github.com/wippyai/hostref/table"
)

func main() {
	var (
		cells   = flag.Int("cells", 3, "Number of seeded typed cells")
		externs = flag.Int("externs", 2, "Number of seeded external payloads")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "refwatch needs a terminal")
		os.Exit(1)
	}

	tbl, err := seed(*cells, *externs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runInspector(tbl); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// seed fills a fresh table with sample referents. Each typed cell is
// externalized twice so identity grouping has something to show.
func seed(cells, externs int) (*table.Table, error) {
	tbl := table.New()

	for i := 0; i < cells; i++ {
		c := hostref.NewCell(fmt.Sprintf("cell-%d", i))
		ref, err := c.Externalize()
		if err != nil {
			return nil, err
		}
		if _, err := tbl.Insert(ref); err != nil {
			return nil, err
		}
		if _, err := tbl.Insert(ref); err != nil {
			return nil, err
		}
	}

	for i := 0; i < externs; i++ {
		if _, err := tbl.Insert(hostref.New(fmt.Sprintf("extern-%d", i))); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}
