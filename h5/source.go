/*
 * source.go, part of VisualPIC.
 *
 * Copyright 2024 The VisualPIC authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package h5

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//prepSource takes the name of a file and returns the name of a plain HDF5 file with its contents,
//and a function to be called once that file is no longer needed.
//For uncompressed files that's the same file. Compressed files (.zst for zstandard, .gz for gzip)
//are decompressed into a temporary file, which the cleanup function removes.
func prepSource(fname string) (string, func(), error) {
	nothing := func() {}
	var ext string
	switch {
	case strings.HasSuffix(fname, ".zst"):
		ext = "zst"
	case strings.HasSuffix(fname, ".gz"):
		ext = "gz"
	default:
		return fname, nothing, nil
	}
	in, err := os.Open(fname)
	if err != nil {
		return "", nothing, err
	}
	defer in.Close()
	var r io.Reader
	switch ext {
	case "zst":
		d, err := zstd.NewReader(bufio.NewReader(in))
		if err != nil {
			return "", nothing, fmt.Errorf("h5: can't decompress %s: %w", fname, err)
		}
		defer d.Close()
		r = d
	case "gz":
		d, err := gzip.NewReader(bufio.NewReader(in))
		if err != nil {
			return "", nothing, fmt.Errorf("h5: can't decompress %s: %w", fname, err)
		}
		defer d.Close()
		r = d
	}
	out, err := os.CreateTemp("", "vpic-*.h5")
	if err != nil {
		return "", nothing, err
	}
	cleanup := func() { os.Remove(out.Name()) }
	if _, err = io.Copy(out, r); err != nil {
		out.Close()
		cleanup()
		return "", nothing, fmt.Errorf("h5: can't decompress %s: %w", fname, err)
	}
	if err = out.Close(); err != nil {
		cleanup()
		return "", nothing, err
	}
	return out.Name(), cleanup, nil
}
