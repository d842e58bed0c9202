package app

import "github.com/nhle/todoview/internal/keys"

// KeyMap is re-exported from the keys package so callers configuring the
// app need not import it separately.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
