package repository

import (
	"context"
	"strings"

	"stock-radar/pkg/utils"
)

// SymbolSourceRepository is one external discovery feed. Discover never
// fails upward: any transport or parse problem is logged inside the adapter
// and degrades to an empty result, so a dead feed only means fewer
// candidates for the run.
type SymbolSourceRepository interface {
	Name() string
	Discover(ctx context.Context) []string
}

// filterSymbols keeps only purely alphabetic symbols, uppercased. Symbols
// carrying exchange suffixes or class punctuation ("BRK.B", "RY-PC") are
// dropped rather than normalized.
func filterSymbols(raw []string) []string {
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if !utils.IsAlpha(s) {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out
}
