package core

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ptCollator   = collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	ptCollatorMu sync.Mutex // collate.Collator is not safe for concurrent use
)

// ComparePTBR compares two strings using pt-BR collation, ignoring case.
func ComparePTBR(a, b string) int {
	ptCollatorMu.Lock()
	defer ptCollatorMu.Unlock()
	return ptCollator.CompareString(a, b)
}

// LessNome orders names for display: pt-BR collation, case-insensitive,
// blank names sink to the end.
func LessNome(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return ComparePTBR(a, b) < 0
}
