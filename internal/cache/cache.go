package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newsproof/newsproof/internal/model"
)

// Cache defines the interface for caching raw bytes
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// EvidenceKey generates a cache key for one claim's evidence gather.
// The preset and knowledge base are part of the key because they
// change which providers run and how results are truncated.
func EvidenceKey(claimText, preset, kbName string) string {
	hash := sha256.Sum256([]byte(claimText + "\x00" + preset + "\x00" + kbName))
	return "newsproof:evidence:v1:" + hex.EncodeToString(hash[:])
}

// GetEvidence retrieves a cached evidence result
func GetEvidence(c Cache, key string) (*model.EvidenceResult, bool) {
	data, found := c.Get(key)
	if !found {
		return nil, false
	}

	var result model.EvidenceResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupt entry; drop it and treat as a miss
		_ = c.Delete(key)
		return nil, false
	}
	return &result, true
}

// SetEvidence stores an evidence result
func SetEvidence(c Cache, key string, result *model.EvidenceResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal evidence result: %w", err)
	}
	return c.Set(key, data, ttl)
}
