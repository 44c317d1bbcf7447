package core

// reader.go wraps source-file readers so the CSV layer only ever sees clean
// UTF-8: the Windows-export BOM is skipped and invalid byte sequences are
// replaced before they can derail column parsing.

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// utf8BOM is the byte order mark Excel prepends to UTF-8 CSV exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewSourceReader prepares a raw file reader for CSV decoding: buffered,
// BOM stripped, invalid UTF-8 replaced with U+FFFD.
func NewSourceReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if peek, err := br.Peek(len(utf8BOM)); err == nil && string(peek) == string(utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return &sanitizingReader{r: br}
}

// sanitizingReader replaces invalid UTF-8 sequences on the fly. Reading
// rune by rune through bufio keeps memory constant regardless of file
// size.
type sanitizingReader struct {
	r   *bufio.Reader
	out []byte
}

func (s *sanitizingReader) Read(p []byte) (int, error) {
	for len(s.out) < len(p) {
		r, _, err := s.r.ReadRune()
		if err != nil {
			n := copy(p, s.out)
			s.out = s.out[n:]
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		// ReadRune yields RuneError for each invalid byte; AppendRune
		// encodes it as the replacement character.
		s.out = utf8.AppendRune(s.out, r)
	}
	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}
