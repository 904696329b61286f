package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/oisee/z80sim/pkg/inst"
)

// writeCatalog prints every instruction form, optionally limited to one
// family.
func writeCatalog(w io.Writer, family string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MNEMONIC\tFAMILY\tM\tT\tNOTES")
	found := false
	for _, op := range inst.AllOps() {
		info := &inst.Catalog[op]
		if family != "" && info.Family.String() != family {
			continue
		}
		found = true
		notes := ""
		switch {
		case info.Reserved:
			notes = "reserved, not executed"
		case info.Extended:
			notes = "z80 variant only"
		}
		if info.Reserved {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t%s\n", info.Mnemonic, info.Family, notes)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", info.Mnemonic, info.Family, info.MCycles, info.TStates, notes)
	}
	if !found {
		return fmt.Errorf("unknown family %q", family)
	}
	return tw.Flush()
}
