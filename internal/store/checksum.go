package store

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/bytedance/sonic"
)

// Checksum returns a short hex digest over v's canonical JSON encoding.
// sonic.ConfigStd sorts map keys and struct field order is fixed, so the
// digest is reproducible across processes given the same value.
func Checksum(v any) (string, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16], nil
}
