package classfile

import (
	"bufio"
	"encoding/binary"
	"io"
)

// binaryReader reads big-endian class file primitives and tracks the offset
// for error reporting.
type binaryReader struct {
	reader    *bufio.Reader
	bytesRead int64
}

func newBinaryReader(r io.Reader) *binaryReader {
	return &binaryReader{reader: bufio.NewReader(r)}
}

func (br *binaryReader) readNBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(br.reader, buf)
	br.bytesRead += int64(read)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (br *binaryReader) skip(n int64) error {
	discarded, err := br.reader.Discard(int(n))
	br.bytesRead += int64(discarded)
	return err
}

func (br *binaryReader) readU1() (uint8, error) {
	b, err := br.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	br.bytesRead++
	return b, nil
}

func (br *binaryReader) readU2() (uint16, error) {
	buf, err := br.readNBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func (br *binaryReader) readU4() (uint32, error) {
	buf, err := br.readNBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}
