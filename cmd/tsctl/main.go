// tsctl reads a single textual sequence-set literal (spec.md section 6's
// `{seq0, seq1, ...}` grammar) from stdin, prints its bounding period,
// instant count, and structural hash, then writes the literal's own
// round-trip back through wkt.Format to stdout so a caller can diff it
// against the input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/calendar"
	"github.com/grailbio/temporal/wkt"
)

var tagName = flag.String("type", "float", "base type of the literal: bool, int, float, text, or point")

func parseTag(name string) (basetype.Tag, error) {
	switch name {
	case "bool":
		return basetype.Bool, nil
	case "int":
		return basetype.Int, nil
	case "float":
		return basetype.Float, nil
	case "text":
		return basetype.Text, nil
	case "point":
		return basetype.Point, nil
	}
	return 0, fmt.Errorf("unknown -type %q", name)
}

func main() {
	shutdown := grail.Init()
	defer shutdown()
	flag.Parse()

	tag, err := parseTag(*tagName)
	if err != nil {
		log.Panic(err)
	}

	input, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		log.Panic(err)
	}

	ss, err := wkt.Parse(tag, string(input))
	if err != nil {
		log.Panic(err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if p, ok := ss.Period(); ok {
		fmt.Fprintf(w, "period: [%s, %s]\n", calendar.Format(p.Lower), calendar.Format(p.Upper))
	} else {
		fmt.Fprintln(w, "period: <empty>")
	}
	fmt.Fprintf(w, "instants: %d\n", ss.NumInstants())
	fmt.Fprintf(w, "hash64: %x\n", ss.Hash64())

	out, err := wkt.Format(ss)
	if err != nil {
		log.Panic(err)
	}
	fmt.Fprintln(w, out)
}
