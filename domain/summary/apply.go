package summary

import "eamlab/domain/core"

// Atom is one unit of a SummaryStatSpec: grouped aggregations, then a
// pivot-wider step over wider_by (a subset of by).
type Atom struct {
	Aggregations []Aggregation
	By           []string
	WiderBy      []string
}

// Spec is an ordered sequence of Atoms. Sequencing two specs with "+" is
// plain slice concatenation: see Compose.
type Spec []Atom

type group struct {
	keyVals map[string]any
	rows    Table
}

func groupBy(data Table, keys []string) []group {
	index := map[string]int{}
	var groups []group
	for _, row := range data {
		kv := projectKeys(row, keys)
		k := keyString(kv, keys)
		if i, ok := index[k]; ok {
			groups[i].rows = append(groups[i].rows, row)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, group{keyVals: kv, rows: Table{row}})
	}
	return groups
}

func applyAtom(atom Atom, data Table) (*AppliedTable, error) {
	if len(atom.By) == 0 {
		return nil, core.New(core.KindConfigInvalid, "summary atom requires at least one by key")
	}
	for _, wk := range atom.WiderBy {
		found := false
		for _, bk := range atom.By {
			if bk == wk {
				found = true
				break
			}
		}
		if !found {
			return nil, core.New(core.KindConfigInvalid, "wider_by key "+wk+" is not a subset of by keys")
		}
	}

	spreadKeys := subtract(atom.By, atom.WiderBy)
	groups := groupBy(data, atom.By)

	type longRow struct {
		keyVals map[string]any
		values  map[string]float64
	}
	longRows := make([]longRow, 0, len(groups))
	for _, g := range groups {
		values := map[string]float64{}
		for _, agg := range atom.Aggregations {
			res := agg.Compute(g.rows)
			for name, v := range res.Columns(agg.Name) {
				values[name] = v
			}
		}
		longRows = append(longRows, longRow{keyVals: g.keyVals, values: values})
	}

	widerIndex := map[string]int{}
	out := &AppliedTable{WiderBy: atom.WiderBy}
	for _, lr := range longRows {
		widerKey := projectKeys(lr.keyVals, atom.WiderBy)
		wk := keyString(widerKey, atom.WiderBy)
		i, ok := widerIndex[wk]
		if !ok {
			i = len(out.Rows)
			widerIndex[wk] = i
			out.Rows = append(out.Rows, &AppliedRow{Identifiers: widerKey, Values: map[string]float64{}})
		}
		suffix := suffixFor(lr.keyVals, spreadKeys)
		for name, v := range lr.values {
			colName := name
			if suffix != "" {
				colName = name + "_" + suffix
			}
			out.Rows[i].Values[colName] = v
		}
	}
	return out, nil
}

// Apply runs every atom against data and joins the results on wider_by.
// An empty Spec is an error: there is no sensible "empty" wide table to
// return.
func Apply(spec Spec, data Table) (*AppliedTable, error) {
	if len(spec) == 0 {
		return nil, core.New(core.KindConfigInvalid, "summary spec has no atoms")
	}
	out, err := applyAtom(spec[0], data)
	if err != nil {
		return nil, err
	}
	for _, atom := range spec[1:] {
		next, err := applyAtom(atom, data)
		if err != nil {
			return nil, err
		}
		out, err = JoinSummaryTables(out, next)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// JoinSummaryTables outer-joins two already-applied tables on their
// wider_by key columns. The two tables must agree on wider_by itself —
// disagreement is a WiderByMismatch, since there would be no shared join
// key to merge on.
func JoinSummaryTables(a, b *AppliedTable) (*AppliedTable, error) {
	if !equalStrSlices(a.WiderBy, b.WiderBy) {
		return nil, core.New(core.KindWiderByMismatch, "cannot join summary tables with differing wider_by keys")
	}
	out := &AppliedTable{WiderBy: a.WiderBy}
	index := map[string]int{}
	merge := func(r *AppliedRow) {
		k := keyString(r.Identifiers, out.WiderBy)
		i, ok := index[k]
		if !ok {
			i = len(out.Rows)
			index[k] = i
			out.Rows = append(out.Rows, &AppliedRow{Identifiers: r.Identifiers, Values: map[string]float64{}})
		}
		for col, v := range r.Values {
			out.Rows[i].Values[col] = v
		}
	}
	for _, r := range a.Rows {
		merge(r)
	}
	for _, r := range b.Rows {
		merge(r)
	}
	return out, nil
}

// Compose concatenates specs in order, mirroring the "+" operator over
// summary-stat specs. Each atom runs and joins independently; composition
// does not merge atoms, only sequences them.
func Compose(specs ...Spec) Spec {
	var out Spec
	for _, s := range specs {
		out = append(out, s...)
	}
	return out
}
