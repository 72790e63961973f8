package inputtext

import (
	"bufio"
	"io"
	"strings"

	"github.com/sudachigo/sudachi/errs"
	"golang.org/x/text/unicode/norm"
)

// RewritePlugin is the default character-rewriting plugin: literal
// replacements loaded from rewrite.def take priority, longest key first;
// anything else is lowercased and NFKC-normalized unless its lowercase
// form is in the ignore-normalize set.
type RewritePlugin struct {
	keyLengths         map[rune]int
	replaceCharMap     map[string]string
	ignoreNormalizeSet map[string]struct{}
}

// NewRewritePlugin parses a rewrite.def-format stream (§6): blank and
// '#'-prefixed lines are skipped; a single-token line adds to the
// ignore-normalize set (the token must be exactly one character); a
// two-token line "before after" registers a literal replacement, and a
// repeated before is an error.
func NewRewritePlugin(r io.Reader) (*RewritePlugin, error) {
	p := &RewritePlugin{
		keyLengths:         make(map[rune]int),
		replaceCharMap:     make(map[string]string),
		ignoreNormalizeSet: make(map[string]struct{}),
	}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Fields(text)
		switch len(cols) {
		case 1:
			key := cols[0]
			if len([]rune(key)) != 1 {
				return nil, errs.AtLine(errs.InvalidFormat, line, key+" is not a single character")
			}
			p.ignoreNormalizeSet[key] = struct{}{}
		case 2:
			key := cols[0]
			if _, exists := p.replaceCharMap[key]; exists {
				return nil, errs.AtLine(errs.AlreadyDefined, line, key+" is already defined")
			}
			first := []rune(key)[0]
			if n := len([]rune(key)); p.keyLengths[first] < n {
				p.keyLengths[first] = n
			}
			p.replaceCharMap[key] = cols[1]
		default:
			return nil, errs.AtLine(errs.InvalidFormat, line, "expected 1 or 2 columns")
		}
	}
	return p, scanner.Err()
}

// Rewrite implements §4.4's default-rewrite algorithm, scanning the
// builder's live modified text left to right.
func (p *RewritePlugin) Rewrite(b *Builder) error {
	i := 0
	for i < len(b.modified) {
		if p.tryLiteralReplace(b, &i) {
			continue
		}
		if err := p.normalizeOne(b, &i); err != nil {
			return err
		}
	}
	return nil
}

func (p *RewritePlugin) tryLiteralReplace(b *Builder, i *int) bool {
	maxLen := p.keyLengths[b.modified[*i]]
	if rem := len(b.modified) - *i; maxLen > rem {
		maxLen = rem
	}
	for l := maxLen; l >= 1; l-- {
		key := string(b.modified[*i : *i+l])
		replace, ok := p.replaceCharMap[key]
		if !ok {
			continue
		}
		b.Replace(*i, *i+l, replace)
		*i += len([]rune(replace))
		return true
	}
	return false
}

func (p *RewritePlugin) normalizeOne(b *Builder, i *int) error {
	original := string(b.modified[*i])
	lower := strings.ToLower(original)

	var replace string
	if _, ignore := p.ignoreNormalizeSet[lower]; ignore {
		if original == lower {
			*i++
			return nil
		}
		replace = lower
	} else {
		replace = norm.NFKC.String(lower)
	}

	if original != replace {
		if err := b.Replace(*i, *i+1, replace); err != nil {
			return err
		}
	}
	*i += len([]rune(replace))
	return nil
}
