// services/store/codec.go
package store

import (
	"encoding/binary"

	"github.com/sigurn/crc16"

	"keypadcode-go/errcode"
	"keypadcode-go/types"
)

// Flash blob layout (little-endian), guarded by a trailing CRC16/MODBUS
// over every preceding byte:
//
//	magic "KP" | layout version | analog count | digital count |
//	name length | name bytes |
//	per analog key:  rt crt rtus rtds lh uh char rest down hid (16 B) |
//	per digital key: char hid (2 B) |
//	crc16
const (
	layoutVersion = 1

	analogKeySize  = 16
	digitalKeySize = 2
	headerSize     = 5
)

var (
	blobMagic = [2]byte{'K', 'P'}
	crcTable  = crc16.MakeTable(crc16.CRC16_MODBUS)
)

func b2i(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Encode serializes a Config into the flash blob layout.
func Encode(cfg *types.Config) []byte {
	size := headerSize + len(cfg.Name) +
		len(cfg.AnalogKeys)*analogKeySize +
		len(cfg.DigitalKeys)*digitalKeySize + 2

	out := make([]byte, 0, size)
	out = append(out, blobMagic[0], blobMagic[1], layoutVersion,
		byte(len(cfg.AnalogKeys)), byte(len(cfg.DigitalKeys)))
	out = append(out, byte(len(cfg.Name)))
	out = append(out, cfg.Name...)

	for i := range cfg.AnalogKeys {
		k := &cfg.AnalogKeys[i]
		out = append(out, b2i(k.RapidTrigger), b2i(k.ContinuousRapidTrigger))
		out = binary.LittleEndian.AppendUint16(out, k.RapidTriggerUpSensitivity)
		out = binary.LittleEndian.AppendUint16(out, k.RapidTriggerDownSensitivity)
		out = binary.LittleEndian.AppendUint16(out, k.LowerHysteresis)
		out = binary.LittleEndian.AppendUint16(out, k.UpperHysteresis)
		out = append(out, k.KeyChar)
		out = binary.LittleEndian.AppendUint16(out, k.RestPosition)
		out = binary.LittleEndian.AppendUint16(out, k.DownPosition)
		out = append(out, b2i(k.HIDEnabled))
	}
	for i := range cfg.DigitalKeys {
		k := &cfg.DigitalKeys[i]
		out = append(out, k.KeyChar, b2i(k.HIDEnabled))
	}

	return binary.LittleEndian.AppendUint16(out, crc16.Checksum(out, crcTable))
}

// Decode parses and verifies a flash blob. Any structural defect
// (magic, layout version, key counts, length, checksum) rejects the
// whole blob so the caller can fall back to defaults.
func Decode(blob []byte) (*types.Config, error) {
	if len(blob) < headerSize+1+2 {
		return nil, errcode.ShortBlob
	}
	body, tail := blob[:len(blob)-2], blob[len(blob)-2:]
	if crc16.Checksum(body, crcTable) != binary.LittleEndian.Uint16(tail) {
		return nil, errcode.BadChecksum
	}
	if body[0] != blobMagic[0] || body[1] != blobMagic[1] {
		return nil, errcode.BadMagic
	}
	if body[2] != layoutVersion {
		return nil, errcode.BadLayout
	}
	analogN, digitalN := int(body[3]), int(body[4])
	if analogN != types.AnalogKeyCount || digitalN != types.DigitalKeyCount {
		return nil, errcode.BadLayout
	}

	nameLen := int(body[5])
	want := headerSize + 1 + nameLen + analogN*analogKeySize + digitalN*digitalKeySize
	if len(body) != want {
		return nil, errcode.ShortBlob
	}
	p := headerSize + 1

	cfg := &types.Config{
		Name:        string(body[p : p+nameLen]),
		AnalogKeys:  make([]types.AnalogKey, analogN),
		DigitalKeys: make([]types.DigitalKey, digitalN),
	}
	p += nameLen

	u16 := func() uint16 {
		v := binary.LittleEndian.Uint16(body[p:])
		p += 2
		return v
	}
	u8 := func() byte {
		v := body[p]
		p++
		return v
	}

	for i := range cfg.AnalogKeys {
		k := &cfg.AnalogKeys[i]
		k.Index = uint8(i)
		k.RapidTrigger = u8() != 0
		k.ContinuousRapidTrigger = u8() != 0
		k.RapidTriggerUpSensitivity = u16()
		k.RapidTriggerDownSensitivity = u16()
		k.LowerHysteresis = u16()
		k.UpperHysteresis = u16()
		k.KeyChar = u8()
		k.RestPosition = u16()
		k.DownPosition = u16()
		k.HIDEnabled = u8() != 0
	}
	for i := range cfg.DigitalKeys {
		k := &cfg.DigitalKeys[i]
		k.Index = uint8(i)
		k.KeyChar = u8()
		k.HIDEnabled = u8() != 0
	}
	return cfg, nil
}
