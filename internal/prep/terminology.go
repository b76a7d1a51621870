package prep

import (
	"github.com/banshee-data/adniprep/internal/config"
	"github.com/banshee-data/adniprep/internal/table"
)

// FixTerminology applies the configured whole-cell substitutions to every
// text cell. Matching is exact and case-sensitive; each cell is rewritten at
// most once, so substitutions do not chain.
func (p *Preparer) FixTerminology() error {
	if p.df == nil {
		return ErrNotInitialized
	}

	subs := make(map[string]config.Substitution)
	for _, s := range p.cfg.GetSubstitutions() {
		subs[s.From] = s
	}

	p.df = p.df.MapCells(func(c table.Cell) table.Cell {
		s, ok := c.Text()
		if !ok {
			return c
		}
		sub, ok := subs[s]
		if !ok {
			return c
		}
		if sub.Missing {
			return table.Missing()
		}
		return table.Text(sub.To)
	})
	return nil
}
