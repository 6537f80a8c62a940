package gff

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// input is an opened annotation source with everything that must be closed.
type input struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

func (in *input) Close() error {
	if in.gz != nil {
		in.gz.Close()
	}
	if in.file != nil {
		return in.file.Close()
	}
	return nil
}

// Open opens a plain or gzipped text file for reading. A path of "-" reads
// standard input. Compression is detected from the gzip magic bytes rather
// than the file name.
func Open(path string) (io.ReadCloser, error) {
	in := &input{}
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		in.file = f
		r = f
	}

	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		in.gz, err = gzip.NewReader(br)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		in.Reader = in.gz
		return in, nil
	}

	in.Reader = br
	return in, nil
}
