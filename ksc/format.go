//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package ksc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"
	"github.com/howeyc/crc16"
	"github.com/spf13/pflag"

	"github.com/ezrec/csscrack"
)

const (
	defaultHeaderMagic = uint32(0x3153534b) // "KSS1"
	defaultVersion     = 1

	flagDigest = uint16(1 << 0)
)

type kscHeader struct {
	Magic   uint32  // 00: "KSS1"
	Version uint16  // 04: Always '1'
	Flags   uint16  // 06: Bit 0, Digest is valid
	Length  uint32  // 08: Keystream bytes following the header
	CRC     uint16  // 0c: CRC-16/CCITT-FALSE of the keystream
	_       uint16  // 0e:
	Digest  [8]byte // 10: Key digest
}

type Formatter struct {
	*pflag.FlagSet

	NoDigest bool
}

func NewFormatter(suffix string) (kf *Formatter) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	kf = &Formatter{
		FlagSet: flagSet,
	}

	kf.BoolVarP(&kf.NoDigest, "no-digest", "d", false, "Do not record the key digest")

	return
}

// Encode saves a capture in KSC format
func (kf *Formatter) Encode(writer csscrack.Writer, capture *csscrack.Capture) (err error) {
	header := kscHeader{
		Magic:   defaultHeaderMagic,
		Version: defaultVersion,
		Length:  uint32(len(capture.Keystream)),
		CRC:     crc16.Checksum(capture.Keystream, crc16.CCITTFalseTable),
	}

	if capture.Digest != nil && !kf.NoDigest {
		header.Flags |= flagDigest
		header.Digest = *capture.Digest
	}

	data, err := restruct.Pack(binary.LittleEndian, &header)
	if err != nil {
		return
	}

	_, err = writer.Write(data)
	if err != nil {
		return
	}

	_, err = writer.Write(capture.Keystream)
	if err != nil {
		return
	}

	return
}

// Decode loads a capture in KSC format
func (kf *Formatter) Decode(file csscrack.Reader, filesize int64) (capture *csscrack.Capture, err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	header := kscHeader{}
	headerSize, _ := restruct.SizeOf(&header)

	if len(data) < headerSize {
		err = fmt.Errorf("file of %d bytes is too short for a header", len(data))
		return
	}

	err = restruct.Unpack(data, binary.LittleEndian, &header)
	if err != nil {
		return
	}

	if header.Magic != defaultHeaderMagic {
		err = fmt.Errorf("Unknown header magic: 0x%08x", header.Magic)
		return
	}

	if header.Version != defaultVersion {
		err = fmt.Errorf("Unsupported version %d", header.Version)
		return
	}

	keystream := data[headerSize:]
	if uint64(len(keystream)) != uint64(header.Length) {
		err = fmt.Errorf("header declares %d keystream bytes, file holds %d", header.Length, len(keystream))
		return
	}

	crc := crc16.Checksum(keystream, crc16.CCITTFalseTable)
	if crc != header.CRC {
		err = fmt.Errorf("keystream CRC 0x%04x, expected 0x%04x", crc, header.CRC)
		return
	}

	capture = &csscrack.Capture{
		Keystream: keystream,
	}

	if header.Flags&flagDigest != 0 {
		digest := csscrack.KeyDigest(header.Digest)
		capture.Digest = &digest
	}

	return
}
