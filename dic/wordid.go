package dic

// WordID is a packed global word id: top 4 bits are the owning
// dictionary's index (0 = system, 1..15 = user dictionaries in load
// order), low 28 bits are the local id within that dictionary.
type WordID uint32

const (
	dictIDShift = 28
	localIDMask = 0x0FFFFFFF
	// MaxDictionaries is the maximum number of lexicons (1 system + 15
	// user) that may be merged into one lexicon set.
	MaxDictionaries = 16
)

// BuildWordID packs a (dictID, localID) pair into a global WordID.
func BuildWordID(dictID int, localID uint32) WordID {
	if localID > localIDMask {
		panic("word id out of range")
	}
	if dictID >= MaxDictionaries {
		panic("dictionary id out of range")
	}
	return WordID(uint32(dictID)<<dictIDShift | localID)
}

// DictionaryID extracts the owning dictionary index from a global WordID.
func (w WordID) DictionaryID() int { return int(uint32(w) >> dictIDShift) }

// LocalID extracts the local id within the owning dictionary.
func (w WordID) LocalID() uint32 { return uint32(w) & localIDMask }
