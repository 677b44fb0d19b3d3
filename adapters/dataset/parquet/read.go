package parquet

import (
	"context"

	"eamlab/domain/core"
	"eamlab/domain/simulation"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

var fixedConditionColumns = map[string]bool{"condition_idx": true, "chunk_idx": true}

var fixedRowColumns = map[string]bool{
	"condition_idx": true, "trial_idx": true, "rank_idx": true,
	"item_idx": true, "rt": true, "choice": true, "chunk_idx": true,
}

func readTableRows(path string) ([]map[string]any, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, core.Wrap(core.KindIOError, "opening parquet file", err)
	}
	defer rdr.Close()

	mem := memory.NewGoAllocator()
	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, core.Wrap(core.KindIOError, "opening parquet arrow reader", err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, core.Wrap(core.KindIOError, "reading parquet table", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	nRows := int(tbl.NumRows())
	rows := make([]map[string]any, nRows)
	for i := range rows {
		rows[i] = map[string]any{}
	}

	for c := 0; c < int(tbl.NumCols()); c++ {
		name := schema.Field(c).Name
		rowIdx := 0
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			switch arr := chunk.(type) {
			case *array.Int64:
				for i := 0; i < arr.Len(); i++ {
					rows[rowIdx][name] = arr.Value(i)
					rowIdx++
				}
			case *array.Float64:
				for i := 0; i < arr.Len(); i++ {
					rows[rowIdx][name] = arr.Value(i)
					rowIdx++
				}
			case *array.Int8:
				for i := 0; i < arr.Len(); i++ {
					rows[rowIdx][name] = arr.Value(i)
					rowIdx++
				}
			}
		}
	}
	return rows, nil
}

func readConditions(path string) ([]simulation.EvaluatedCondition, error) {
	raw, err := readTableRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]simulation.EvaluatedCondition, len(raw))
	for i, r := range raw {
		params := map[string]float64{}
		for k, v := range r {
			if fixedConditionColumns[k] {
				continue
			}
			params[k] = v.(float64)
		}
		out[i] = simulation.EvaluatedCondition{
			ConditionIdx: int(r["condition_idx"].(int64)),
			ChunkIdx:     int(r["chunk_idx"].(int64)),
			Params:       params,
		}
	}
	return out, nil
}

func readRows(path string) ([]simulation.Row, error) {
	raw, err := readTableRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]simulation.Row, len(raw))
	for i, r := range raw {
		params := map[string]float64{}
		for k, v := range r {
			if fixedRowColumns[k] {
				continue
			}
			params[k] = v.(float64)
		}
		row := simulation.Row{
			ConditionIdx: int(r["condition_idx"].(int64)),
			TrialIdx:     int(r["trial_idx"].(int64)),
			RankIdx:      int(r["rank_idx"].(int64)),
			ItemIdx:      int(r["item_idx"].(int64)),
			RT:           r["rt"].(float64),
			ChunkIdx:     int(r["chunk_idx"].(int64)),
			Params:       params,
		}
		if c, ok := r["choice"]; ok {
			row.Choice = c.(int8)
			row.HasChoice = true
		}
		out[i] = row
	}
	return out, nil
}
