package stego

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/reedsolomon"
)

// Reed-Solomon Configuration
const (
	rsDataShards   = 4
	rsParityShards = 2
	rsTotalShards  = rsDataShards + rsParityShards
	rsChecksumSize = 4
)

// addReedSolomon splits data into shards and appends parity. Every shard is
// prefixed with its CRC-32 so damaged shards can be located and rebuilt.
//
//	[crc][shard 0] ... [crc][shard 5]   shards hold [length uint32][data][padding]
func addReedSolomon(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(rsDataShards, rsParityShards)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(payload, uint32(len(data)))
	copy(payload[4:], data)

	shards, err := enc.Split(payload)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	shardSize := len(shards[0])
	output := make([]byte, 0, rsTotalShards*(rsChecksumSize+shardSize))
	for _, shard := range shards {
		output = binary.BigEndian.AppendUint32(output, crc32.ChecksumIEEE(shard))
		output = append(output, shard...)
	}
	return output, nil
}

func removeReedSolomon(data []byte) ([]byte, error) {
	if len(data)%rsTotalShards != 0 || len(data)/rsTotalShards <= rsChecksumSize {
		return nil, fmt.Errorf("%w: %d bytes is not a valid shard set", ErrCorruptPayload, len(data))
	}
	stride := len(data) / rsTotalShards

	enc, err := reedsolomon.New(rsDataShards, rsParityShards)
	if err != nil {
		return nil, err
	}

	shards := make([][]byte, rsTotalShards)
	missing := 0
	for i := range shards {
		chunk := data[i*stride : (i+1)*stride]
		shard := chunk[rsChecksumSize:]
		if crc32.ChecksumIEEE(shard) != binary.BigEndian.Uint32(chunk[:rsChecksumSize]) {
			missing++
			continue
		}
		shards[i] = append([]byte(nil), shard...)
	}

	if missing > rsParityShards {
		return nil, fmt.Errorf("%w: %d of %d shards damaged", ErrCorruptPayload, missing, rsTotalShards)
	}
	if missing > 0 {
		if err := enc.Reconstruct(shards); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
		}
	}
	if ok, err := enc.Verify(shards); err != nil || !ok {
		return nil, fmt.Errorf("%w: parity mismatch", ErrCorruptPayload)
	}

	joined := make([]byte, 0, rsDataShards*(stride-rsChecksumSize))
	for i := 0; i < rsDataShards; i++ {
		joined = append(joined, shards[i]...)
	}

	length := binary.BigEndian.Uint32(joined[:4])
	if uint64(len(joined)) < 4+uint64(length) {
		return nil, fmt.Errorf("%w: recovered data length mismatch", ErrCorruptPayload)
	}
	return joined[4 : 4+length], nil
}
