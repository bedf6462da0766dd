package world

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const mapMagic = "VXMAP1\n"

// mapHeader is the fixed little-endian header following the magic.
type mapHeader struct {
	Width, Height, Length   int32
	EdgeHeight, SidesOffset int32
	Border                  uint8
}

// SaveMap writes w as a zstd compressed map file.
func SaveMap(path string, w *World) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := writeMap(enc, w); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeMap(out io.Writer, w *World) error {
	bw := bufio.NewWriterSize(out, 256*1024)
	if _, err := bw.WriteString(mapMagic); err != nil {
		return err
	}
	hdr := mapHeader{
		Width: int32(w.Width), Height: int32(w.Height), Length: int32(w.Length),
		EdgeHeight: int32(w.Env.EdgeHeight), SidesOffset: int32(w.Env.SidesOffset),
		Border: uint8(w.Env.Border),
	}
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("map header: %w", err)
	}
	for _, b := range w.Blocks {
		if err := bw.WriteByte(byte(b)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadMap reads a map file written by SaveMap.
func LoadMap(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return readMap(dec)
}

func readMap(in io.Reader) (*World, error) {
	br := bufio.NewReaderSize(in, 256*1024)
	magic := make([]byte, len(mapMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("map magic: %w", err)
	}
	if string(magic) != mapMagic {
		return nil, errors.New("map magic: not a voxel map file")
	}
	var hdr mapHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("map header: %w", err)
	}
	w, err := New(int(hdr.Width), int(hdr.Height), int(hdr.Length))
	if err != nil {
		return nil, err
	}
	w.Env = Env{EdgeHeight: int(hdr.EdgeHeight), SidesOffset: int(hdr.SidesOffset), Border: BlockID(hdr.Border)}

	raw := make([]byte, len(w.Blocks))
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("map blocks: %w", err)
	}
	for i, b := range raw {
		w.Blocks[i] = BlockID(b)
	}
	return w, nil
}
