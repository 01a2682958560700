package config

import (
	"fmt"

	"github.com/danmuck/plcstub/internal/plctag"
)

// PreloadTags creates every configured tag in order and returns their ids.
func PreloadTags(stub *plctag.Stub, tags []TagConfig) ([]int32, error) {
	ids := make([]int32, 0, len(tags))
	for i, entry := range tags {
		id, err := stub.Create(entry.Attrs)
		if err != nil {
			return ids, fmt.Errorf("preload tags[%d] %q: %w", i, entry.Attrs, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
