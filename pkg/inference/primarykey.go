package inference

import (
	"github.com/adri-oss/adri-go/pkg/adri"
)

// InferPrimaryKey selects the record_identification.primary_key_fields
// (spec §4.3 "Primary key"), in preference order: a single id-like
// column that is unique and non-null; a composite of up to
// cfg.MaxPKComboSize columns that is jointly unique and non-null,
// exhausting id-like-only combinations across all sizes before mixing
// in the remaining columns; any other single column that is unique and
// non-null; and finally the first column.
func InferPrimaryKey(ds adri.TabularView, cfg Config) []string {
	names := ds.ColumnNames()
	if len(names) == 0 {
		return nil
	}

	idLike := make([]string, 0, len(names))
	for _, name := range names {
		if IsIDLike(name, cfg.IDLikeSubstrings) {
			idLike = append(idLike, name)
		}
	}

	for _, name := range idLike {
		col, _ := ds.Col(name)
		if columnUniqueNonNull(col) {
			return []string{name}
		}
	}

	if len(idLike) >= 2 {
		for size := 2; size <= cfg.MaxPKComboSize && size <= len(idLike); size++ {
			if combo := searchCombos(ds, idLike, size); combo != nil {
				return combo
			}
		}
	}
	for size := 2; size <= cfg.MaxPKComboSize && size <= len(names); size++ {
		if combo := searchCombos(ds, names, size); combo != nil {
			return combo
		}
	}

	for _, name := range names {
		if IsIDLike(name, cfg.IDLikeSubstrings) {
			continue
		}
		col, _ := ds.Col(name)
		if columnUniqueNonNull(col) {
			return []string{name}
		}
	}

	return []string{names[0]}
}

func columnUniqueNonNull(col adri.Column) bool {
	seen := make(map[string]struct{}, len(col.Cells))
	for _, c := range col.Cells {
		if c.Null() {
			return false
		}
		key := c.AsString()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

// searchCombos finds the first combination of `size` columns (in
// ascending lexicographic index order) whose concatenated keys are
// unique and non-null across all rows.
func searchCombos(ds adri.TabularView, names []string, size int) []string {
	n := len(names)
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}

	for {
		if combo := tryCombo(ds, names, idx); combo != nil {
			return combo
		}
		if !nextCombo(idx, n) {
			return nil
		}
	}
}

func tryCombo(ds adri.TabularView, names []string, idx []int) []string {
	combo := make([]string, len(idx))
	cols := make([]adri.Column, len(idx))
	for i, ix := range idx {
		combo[i] = names[ix]
		col, ok := ds.Col(names[ix])
		if !ok {
			return nil
		}
		cols[i] = col
	}
	if len(cols) == 0 || len(cols[0].Cells) == 0 {
		return nil
	}

	rowCount := len(cols[0].Cells)
	seen := make(map[string]struct{}, rowCount)
	for r := 0; r < rowCount; r++ {
		key := ""
		for _, col := range cols {
			c := col.Cells[r]
			if c.Null() {
				return nil
			}
			key += "\x1f" + c.AsString()
		}
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}
	}
	return combo
}

// nextCombo advances idx to the next ascending combination of len(idx)
// indices drawn from [0,n). Returns false when combinations are
// exhausted.
func nextCombo(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}
