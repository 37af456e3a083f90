/*
 * archive.go, part of gozmat
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package zmat

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//The archive is a zstd stream with key=value header lines, a "%%" line,
//and one block per z-matrix. Each block starts with "** <rows>", followed by
//the z-matrix as written by ZMatrix.String, and ends with a "*" line.
const headerEnd = "%%"

//ArchiveWriter writes a sequence of z-matrices to a compressed stream.
type ArchiveWriter struct {
	h         *zstd.Encoder
	writeable bool
	written   int
}

//NewArchiveWriter returns a writer for z-matrices on w, with the given header.
//Header keys can't contain "=" or newlines.
func NewArchiveWriter(w io.Writer, header map[string]string) (*ArchiveWriter, error) {
	h, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, newError(ErrWrongFormat, "NewArchiveWriter", "can't start the compressor: %s", err.Error())
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") {
			h.Close()
			return nil, newError(ErrWrongFormat, "NewArchiveWriter", "invalid header entry %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s=%s\n", k, header[k]))
	}
	b.WriteString(headerEnd + "\n")
	if _, err := h.Write([]byte(b.String())); err != nil {
		h.Close()
		return nil, err
	}
	return &ArchiveWriter{h: h, writeable: true}, nil
}

//WriteZMatrix appends Z to the archive.
func (A *ArchiveWriter) WriteZMatrix(Z *ZMatrix) error {
	if !A.writeable {
		return newError(ErrWrongFormat, "WriteZMatrix", "archive already closed")
	}
	block := fmt.Sprintf("** %d\n%s*\n", Z.Count(), Z.String())
	if _, err := A.h.Write([]byte(block)); err != nil {
		return err
	}
	A.written++
	return nil
}

//Len returns the number of z-matrices written so far.
func (A *ArchiveWriter) Len() int {
	return A.written
}

//Close flushes the stream. It doesn't close the underlying writer.
func (A *ArchiveWriter) Close() error {
	if A == nil || !A.writeable {
		return nil
	}
	A.writeable = false
	return A.h.Close()
}

//ArchiveReader reads z-matrices written by an ArchiveWriter.
type ArchiveReader struct {
	d      *zstd.Decoder
	h      *bufio.Reader
	header map[string]string
}

//NewArchiveReader starts reading an archive from r, and parses its header.
func NewArchiveReader(r io.Reader) (*ArchiveReader, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, newError(ErrWrongFormat, "NewArchiveReader", "can't start the decompressor: %s", err.Error())
	}
	A := &ArchiveReader{d: d, h: bufio.NewReader(d), header: make(map[string]string)}
	for {
		line, err := A.h.ReadString('\n')
		if err != nil {
			A.Close()
			return nil, newError(ErrWrongFormat, "NewArchiveReader", "can't read header: %s", err.Error())
		}
		line = strings.TrimSpace(line)
		if line == headerEnd {
			break
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			A.Close()
			return nil, newError(ErrWrongFormat, "NewArchiveReader", "ill formed header line %q", line)
		}
		A.header[kv[0]] = kv[1]
	}
	return A, nil
}

//Header returns a copy of the archive header.
func (A *ArchiveReader) Header() map[string]string {
	ret := make(map[string]string, len(A.header))
	for k, v := range A.header {
		ret[k] = v
	}
	return ret
}

//Next returns the next z-matrix in the archive, or io.EOF if there are no more.
func (A *ArchiveReader) Next() (*ZMatrix, error) {
	line, err := A.h.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) == "" {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	f := strings.Fields(line)
	if len(f) != 2 || f[0] != "**" {
		return nil, newError(ErrWrongFormat, "Next", "expected a block start, got %q", line)
	}
	rows, err := strconv.Atoi(f[1])
	if err != nil {
		return nil, newError(ErrWrongFormat, "Next", "block start: %s", err.Error())
	}
	var b strings.Builder
	for {
		line, err := A.h.ReadString('\n')
		if err != nil {
			return nil, newError(ErrWrongFormat, "Next", "truncated block: %s", err.Error())
		}
		if strings.TrimSpace(line) == "*" {
			break
		}
		b.WriteString(line)
	}
	Z, err := ParseZMatrix(b.String())
	if err != nil {
		return nil, errDecorate(err, "Next")
	}
	if Z.Count() != rows {
		return nil, newError(ErrWrongFormat, "Next", "block announced %d rows, read %d", rows, Z.Count())
	}
	return Z, nil
}

//Close releases the resources of the decompressor.
func (A *ArchiveReader) Close() {
	if A == nil || A.d == nil {
		return
	}
	A.d.Close()
	A.d = nil
}
