package extract

import "github.com/ppiankov/coldtrail/internal/model"

// Dedupe collapses records that share an identity signature, keeping the
// first occurrence of each. Order is otherwise preserved, so the result is
// deterministic for a deterministic input order.
func Dedupe(records []model.CaseRecord) []model.CaseRecord {
	seen := make(map[string]bool, len(records))
	unique := make([]model.CaseRecord, 0, len(records))

	for _, rec := range records {
		sig := rec.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		unique = append(unique, rec)
	}

	return unique
}
