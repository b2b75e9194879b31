package sqlite

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// serializeVector converts a float32 slice to a LittleEndian byte slice for
// BLOB storage.
func serializeVector(vec []float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, vec); err != nil {
		return nil, fmt.Errorf("failed to serialize vector: %w", err)
	}
	return buf.Bytes(), nil
}

func deserializeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("invalid vector blob length %d", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	if err := binary.Read(bytes.NewReader(blob), binary.LittleEndian, &vec); err != nil {
		return nil, fmt.Errorf("failed to deserialize vector: %w", err)
	}
	return vec, nil
}
