package dic

import (
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/sudachigo/sudachi/errs"
)

// Dictionary is one loaded binary dictionary file: its header, grammar
// (if any) and lexicon. Once loaded it is immutable; file handles are
// closed before the loader returns, and the backing mmap stays mapped
// until Close.
type Dictionary struct {
	Header  Header
	Grammar *Grammar // nil for USER_DICT_v1 (no grammar section)
	Lexicon *Lexicon

	mm mmap.MMap
}

// LoadSystem memory-maps and parses a system dictionary file.
func LoadSystem(path string) (*Dictionary, error) {
	return load(path, true)
}

// LoadUser memory-maps and parses a user dictionary file. USER_DICT_v1
// carries no grammar section; such a file loads with a nil Grammar
// (LoadSystem rejects it with not-found-grammar).
func LoadUser(path string) (*Dictionary, error) {
	return load(path, false)
}

func load(path string, requireGrammar bool) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}

	buf := []byte(m)
	header, offset, err := readHeader(buf, 0)
	if err != nil {
		m.Unmap()
		return nil, err
	}

	var grammar *Grammar
	if header.HasGrammar() {
		grammar, offset, err = readGrammar(buf, offset)
		if err != nil {
			m.Unmap()
			return nil, err
		}
	} else if requireGrammar {
		m.Unmap()
		return nil, errs.New(errs.NotFoundGrammar, "dictionary has no grammar section")
	}

	lexicon, _, err := readLexicon(buf, offset)
	if err != nil {
		m.Unmap()
		return nil, err
	}

	return &Dictionary{Header: header, Grammar: grammar, Lexicon: lexicon, mm: m}, nil
}

// Close unmaps the dictionary's backing memory. A Dictionary must not be
// used afterward.
func (d *Dictionary) Close() error {
	if d.mm == nil {
		return nil
	}
	return d.mm.Unmap()
}
