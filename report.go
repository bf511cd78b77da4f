package heredity

import (
	"bufio"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

// WriteReport prints every person's posterior in pedigree order, gene
// counts from two copies down to none, each probability to four decimals.
func WriteReport(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)

	for _, name := range r.names {
		d := r.dists[name]

		fmt.Fprintf(bw, "%s:\n", name)
		fmt.Fprintln(bw, "  Gene:")
		for g := GeneTwo; ; g-- {
			fmt.Fprintf(bw, "    %s: %.4f\n", g, d.GeneProbability(g))
			if g == GeneZero {
				break
			}
		}
		fmt.Fprintln(bw, "  Trait:")
		fmt.Fprintf(bw, "    True: %.4f\n", d.TraitProbability(true))
		fmt.Fprintf(bw, "    False: %.4f\n", d.TraitProbability(false))
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
