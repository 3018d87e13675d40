package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/sabzi/internal/model"
)

const formatVersion = 1

var ErrEmptyPassphrase = errors.New("backup passphrase is required")

// snapshot is the plaintext layout of a backup.
type snapshot struct {
	Version    int                  `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Items      []model.ShoppingItem `json:"items"`
}

// Export serialises items and seals them with passphrase.
func Export(items []model.ShoppingItem, passphrase string, now time.Time) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}

	plaintext, err := json.Marshal(snapshot{Version: formatVersion, ExportedAt: now.UTC(), Items: items})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return Seal(plaintext, passphrase)
}

// Restore opens a backup made by Export and returns its items.
func Restore(data []byte, passphrase string) ([]model.ShoppingItem, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	plaintext, err := Open(data, passphrase)
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snap.Version != formatVersion {
		return nil, fmt.Errorf("unsupported backup version %d", snap.Version)
	}
	for _, item := range snap.Items {
		if item.Name == "" || !item.Status.Valid() {
			return nil, fmt.Errorf("invalid item %q in backup", item.ID)
		}
	}
	return snap.Items, nil
}
