// Package ioutil holds the small file-writing helpers shared by the decb
// flush path and the os9 extract path.
package ioutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// WriteFile copies data to the file at path, creating or truncating it and
// writing through a 32KB buffer. Used by decb.Volume.Flush and
// os9.Volume.ExtractTo. A simple full overwrite is sufficient here — no
// temp-file-and-rename dance is required.
func WriteFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 32*1024)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return err
	}
	return w.Flush()
}
