package model

import (
	"sort"
)

// Manifest aggregates every declaration found in one compilation pass.
// It is rebuilt from scratch each pass; Sort must run before emission.
type Manifest struct {
	Procedures []ProcedureSpec `json:"procedures" yaml:"procedures"`
	Records    []RecordSpec    `json:"records" yaml:"records"`
	Sums       []SumSpec       `json:"sums" yaml:"sums"`
}

// Stats counts manifest contents for CLI summaries.
type Stats struct {
	Queries   int `json:"queries"`
	Mutations int `json:"mutations"`
	Records   int `json:"records"`
	Sums      int `json:"sums"`
}

// Types is the number of emitted type declarations.
func (s Stats) Types() int { return s.Records + s.Sums }

// Merge appends the contents of other.
func (m *Manifest) Merge(other *Manifest) {
	if other == nil {
		return
	}
	m.Procedures = append(m.Procedures, other.Procedures...)
	m.Records = append(m.Records, other.Records...)
	m.Sums = append(m.Sums, other.Sums...)
}

// Sort orders each collection by name. Equal names fall back to source
// location so duplicates still sort the same way every run.
func (m *Manifest) Sort() {
	sort.SliceStable(m.Procedures, func(i, j int) bool {
		return lessByName(m.Procedures[i].Name, m.Procedures[j].Name, m.Procedures[i].Source, m.Procedures[j].Source)
	})
	sort.SliceStable(m.Records, func(i, j int) bool {
		return lessByName(m.Records[i].Name, m.Records[j].Name, m.Records[i].Source, m.Records[j].Source)
	})
	sort.SliceStable(m.Sums, func(i, j int) bool {
		return lessByName(m.Sums[i].Name, m.Sums[j].Name, m.Sums[i].Source, m.Sums[j].Source)
	})
}

func lessByName(a, b string, sa, sb SourceLocation) bool {
	if a != b {
		return a < b
	}
	if sa.File != sb.File {
		return sa.File < sb.File
	}
	return sa.Line < sb.Line
}

// IsEmpty reports a manifest with no declarations at all.
func (m *Manifest) IsEmpty() bool {
	return len(m.Procedures) == 0 && len(m.Records) == 0 && len(m.Sums) == 0
}

// Stats returns declaration counts.
func (m *Manifest) Stats() Stats {
	var s Stats
	for _, p := range m.Procedures {
		if p.Kind == Mutation {
			s.Mutations++
		} else {
			s.Queries++
		}
	}
	s.Records = len(m.Records)
	s.Sums = len(m.Sums)
	return s
}

// Duplicates returns, sorted, every name declared more than once within the
// same category (procedures, or types: records and sums share a namespace in
// the emitted file).
func (m *Manifest) Duplicates() []string {
	seen := make(map[string]int)
	for _, p := range m.Procedures {
		seen["procedure "+p.Name]++
	}
	for _, r := range m.Records {
		seen["type "+r.Name]++
	}
	for _, s := range m.Sums {
		seen["type "+s.Name]++
	}

	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// TypeNames returns the declared record and sum names.
func (m *Manifest) TypeNames() map[string]bool {
	names := make(map[string]bool, len(m.Records)+len(m.Sums))
	for _, r := range m.Records {
		names[r.Name] = true
	}
	for _, s := range m.Sums {
		names[s.Name] = true
	}
	return names
}

// WalkTypeRefs visits every TypeRef in the manifest, including nested
// generic arguments.
func (m *Manifest) WalkTypeRefs(fn func(TypeRef)) {
	for _, p := range m.Procedures {
		if p.Input != nil {
			p.Input.Walk(fn)
		}
		if p.Output != nil {
			p.Output.Walk(fn)
		}
	}
	for _, r := range m.Records {
		for _, f := range r.Fields {
			f.Type.Walk(fn)
		}
		for _, t := range r.TupleFields {
			t.Walk(fn)
		}
	}
	for _, s := range m.Sums {
		for _, v := range s.Variants {
			for _, t := range v.Types {
				t.Walk(fn)
			}
			for _, f := range v.Fields {
				f.Type.Walk(fn)
			}
		}
	}
}
