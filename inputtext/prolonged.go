package inputtext

// ProlongedSoundMarkPlugin collapses runs of two or more consecutive
// prolonged-sound-mark code points into a single replacement symbol.
type ProlongedSoundMarkPlugin struct {
	psmSet        map[rune]struct{}
	replaceSymbol string
}

// NewProlongedSoundMarkPlugin builds a plugin from the configured mark
// set (each mark's first rune is the code point tracked) and replacement
// symbol; an empty symbol defaults to "ー".
func NewProlongedSoundMarkPlugin(marks []string, replaceSymbol string) *ProlongedSoundMarkPlugin {
	psm := make(map[rune]struct{}, len(marks))
	for _, m := range marks {
		for _, r := range m {
			psm[r] = struct{}{}
			break
		}
	}
	if replaceSymbol == "" {
		replaceSymbol = "ー"
	}
	return &ProlongedSoundMarkPlugin{psmSet: psm, replaceSymbol: replaceSymbol}
}

func (p *ProlongedSoundMarkPlugin) Rewrite(b *Builder) error {
	text := []rune(b.GetText())
	n := len(text)
	offset := 0
	isPSM := false
	mStart := n
	for i, c := range text {
		_, in := p.psmSet[c]
		switch {
		case !isPSM && in:
			isPSM = true
			mStart = i
		case isPSM && !in:
			if i-mStart > 1 {
				if err := b.Replace(mStart-offset, i-offset, p.replaceSymbol); err != nil {
					return err
				}
				offset += i - mStart - 1
			}
			isPSM = false
		}
	}
	if isPSM && n-mStart > 1 {
		if err := b.Replace(mStart-offset, n-offset, p.replaceSymbol); err != nil {
			return err
		}
	}
	return nil
}
