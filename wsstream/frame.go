package wsstream

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// FrameMagic is the required 4-byte little-endian magic ("PJRB") at offset 0
// of every binary frame (spec §6.4).
const FrameMagic uint32 = 0x42524A50

const frameHeaderSize = 16

// FrameHeader is the fixed 16-byte header preceding a frame's ZSTD payload
// (spec §3, §6.4).
type FrameHeader struct {
	Magic            uint32
	MessageCount     uint32
	UncompressedSize uint32
	Flags            uint32
}

// Block is one topic/timestamp/bytes tuple decoded from a frame's payload
// (spec §3).
type Block struct {
	TopicName string
	TsSec     float64
	Data      []byte
}

// DecodeFrame validates and decompresses one binary WebSocket message,
// returning its blocks in payload order (spec §4.9). It rejects frames with
// a bad magic, non-zero flags, a decompressed size that doesn't match the
// header, or a block count that doesn't match message_count.
func DecodeFrame(raw []byte) ([]Block, error) {
	if len(raw) < frameHeaderSize {
		return nil, fmt.Errorf("wsstream: frame shorter than header (%d bytes)", len(raw))
	}
	header := FrameHeader{
		Magic:            binary.LittleEndian.Uint32(raw[0:4]),
		MessageCount:     binary.LittleEndian.Uint32(raw[4:8]),
		UncompressedSize: binary.LittleEndian.Uint32(raw[8:12]),
		Flags:            binary.LittleEndian.Uint32(raw[12:16]),
	}
	if header.Magic != FrameMagic {
		return nil, fmt.Errorf("wsstream: bad frame magic 0x%08X", header.Magic)
	}
	if header.Flags != 0 {
		return nil, fmt.Errorf("wsstream: non-zero frame flags 0x%08X", header.Flags)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("wsstream: creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	payload, err := decoder.DecodeAll(raw[frameHeaderSize:], make([]byte, 0, header.UncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("wsstream: zstd decompression: %w", err)
	}
	if uint32(len(payload)) != header.UncompressedSize {
		return nil, fmt.Errorf("wsstream: decompressed size %d != header %d", len(payload), header.UncompressedSize)
	}

	blocks, err := decodeBlocks(payload)
	if err != nil {
		return nil, err
	}
	if uint32(len(blocks)) != header.MessageCount {
		return nil, fmt.Errorf("wsstream: parsed block count %d != message_count %d", len(blocks), header.MessageCount)
	}
	return blocks, nil
}

func decodeBlocks(payload []byte) ([]Block, error) {
	var blocks []Block
	offset := 0
	for offset < len(payload) {
		if offset+2 > len(payload) {
			return nil, fmt.Errorf("wsstream: truncated block name length at offset %d", offset)
		}
		nameLen := int(binary.LittleEndian.Uint16(payload[offset : offset+2]))
		offset += 2

		if offset+nameLen > len(payload) {
			return nil, fmt.Errorf("wsstream: truncated block name at offset %d", offset)
		}
		name := string(payload[offset : offset+nameLen])
		offset += nameLen

		if offset+8 > len(payload) {
			return nil, fmt.Errorf("wsstream: truncated block log_time at offset %d", offset)
		}
		logTimeNs := binary.LittleEndian.Uint64(payload[offset : offset+8])
		offset += 8

		if offset+4 > len(payload) {
			return nil, fmt.Errorf("wsstream: truncated block data_len at offset %d", offset)
		}
		dataLen := int(binary.LittleEndian.Uint32(payload[offset : offset+4]))
		offset += 4

		if offset+dataLen > len(payload) {
			return nil, fmt.Errorf("wsstream: truncated block data at offset %d", offset)
		}
		data := payload[offset : offset+dataLen]
		offset += dataLen

		blocks = append(blocks, Block{
			TopicName: name,
			TsSec:     float64(logTimeNs) * 1e-9,
			Data:      data,
		})
	}
	return blocks, nil
}

// EncodeFrame is the inverse of DecodeFrame, used by tests to build fixture
// frames (spec §6.4).
func EncodeFrame(blocks []Block) ([]byte, error) {
	var payload []byte
	for _, b := range blocks {
		nameBytes := []byte(b.TopicName)
		buf := make([]byte, 2+len(nameBytes)+8+4+len(b.Data))
		binary.LittleEndian.PutUint16(buf[0:2], uint16(len(nameBytes)))
		copy(buf[2:2+len(nameBytes)], nameBytes)
		off := 2 + len(nameBytes)
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(b.TsSec*1e9))
		off += 8
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(len(b.Data)))
		off += 4
		copy(buf[off:], b.Data)
		payload = append(payload, buf...)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("wsstream: creating zstd encoder: %w", err)
	}
	compressed := encoder.EncodeAll(payload, nil)
	encoder.Close()

	header := make([]byte, frameHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], FrameMagic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(blocks)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[12:16], 0)

	return append(header, compressed...), nil
}
