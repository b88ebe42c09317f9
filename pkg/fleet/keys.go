package fleet

import "github.com/google/uuid"

// IsGUIDKey reports whether key parses as the GUID form the editor assigns
// to ships and missile templates.
func IsGUIDKey(key string) bool {
	_, err := uuid.Parse(key)
	return err == nil
}

// NewKey returns a fresh GUID key.
func NewKey() string {
	return uuid.NewString()
}

// Rekey assigns fresh keys to every ship and rewrites formation guide
// references to match. Used when cloning a fleet so the copy does not
// collide with the original in the game's save directory.
func (f *Fleet) Rekey() {
	remap := make(map[string]string, len(f.Ships))
	for i := range f.Ships {
		remap[f.Ships[i].Key] = NewKey()
	}

	for i := range f.Ships {
		s := &f.Ships[i]
		s.Key = remap[s.Key]
		if s.InitialFormation != nil {
			if nk, ok := remap[s.InitialFormation.GuideKey]; ok {
				s.InitialFormation.GuideKey = nk
			}
		}
	}
}
