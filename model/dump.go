package model

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes every non-dead edge of the board to w, one per line, sorted by
// coordinate and then edge:
//
//	(0,0)/XY alive
//	(0,0)/ZX barren
func Dump(w io.Writer, b *Board) error {
	bw := bufio.NewWriter(w)
	for _, c := range b.Coords() {
		state := UnpackEdges(b.cells[c])
		for _, e := range EdgeDirs {
			if state.Get(e) == Dead {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%s %s\n", EdgeAt(c, e), state.Get(e)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
