package storage

import (
	"fmt"
	"sort"

	"github.com/dcbak/dcbak/internal/config"
)

// Mirror is a named storage pool artifacts are replicated to after the
// local write.
type Mirror struct {
	Name    string
	Storage Storage
}

// NewMirrors instantiates every configured storage pool. The returned
// slice is sorted by pool name for deterministic upload order.
func NewMirrors(pools map[string]*config.StoragePool) ([]Mirror, error) {
	mirrors := make([]Mirror, 0, len(pools))

	for name, poolCfg := range pools {
		storageType, ok := Get(poolCfg.Type)
		if !ok {
			return nil, fmt.Errorf("unknown storage type %q for pool %q (available: %v)", poolCfg.Type, name, List())
		}

		storage, err := storageType.Create(name, poolCfg.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage pool %q: %w", name, err)
		}

		mirrors = append(mirrors, Mirror{Name: name, Storage: storage})
	}

	sort.Slice(mirrors, func(i, j int) bool {
		return mirrors[i].Name < mirrors[j].Name
	})

	return mirrors, nil
}
