package main

import (
	"bufio"
	"io"

	"github.com/coregx/sufmatch/matcher"
	"github.com/coregx/sufmatch/store"
)

// writeResults queries m for every part in original file order and
// writes one "code;match\n" line per part to w, buffered. The match
// field is empty when a part has no match. No header, no trailing
// content beyond the final newline.
func writeResults(w io.Writer, parts []*store.Part, m *matcher.Matcher) error {
	bw := bufio.NewWriter(w)

	for _, part := range parts {
		if _, err := bw.Write(part.Original()); err != nil {
			return err
		}
		if err := bw.WriteByte(';'); err != nil {
			return err
		}
		if original, ok := m.Query(part); ok {
			if _, err := bw.Write(original); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
