package contentid

import (
	"fmt"
	"strconv"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Of returns the CIDv1 (raw + sha2-256) string for data.
func Of(data []byte) (string, error) {
	parsed, err := CID(data)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// CID returns the CIDv1 (raw + sha2-256) derived from data.
func CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("failed to hash content: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Indexed derives an identifier for data at a position in an ordered batch.
// Identical bytes at different positions get different identifiers.
func Indexed(data []byte, index int) (string, error) {
	base, err := Of(data)
	if err != nil {
		return "", err
	}
	return base + "-" + strconv.Itoa(index), nil
}

// Validate reports whether value parses as a CID.
func Validate(value string) error {
	if _, err := cid.Decode(value); err != nil {
		return fmt.Errorf("invalid content identifier %q: %w", value, err)
	}
	return nil
}
