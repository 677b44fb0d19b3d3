package parquet

import (
	"os"

	"eamlab/domain/core"
	"eamlab/domain/simulation"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

func writeRecord(path string, schema *arrow.Schema, rec arrow.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return core.Wrap(core.KindIOError, "creating parquet file", err)
	}
	defer f.Close()

	writerProps := parquet.NewWriterProperties()
	arrowProps := pqarrow.DefaultWriterProps()
	writer, err := pqarrow.NewFileWriter(schema, f, writerProps, arrowProps)
	if err != nil {
		return core.Wrap(core.KindIOError, "opening parquet writer", err)
	}
	defer writer.Close()

	if err := writer.Write(rec); err != nil {
		return core.Wrap(core.KindIOError, "writing parquet record batch", err)
	}
	return nil
}

func writeConditions(path string, rows []simulation.EvaluatedCondition) error {
	paramsOnly := make([]map[string]float64, len(rows))
	for i, r := range rows {
		paramsOnly[i] = r.Params
	}
	params := paramColumns(paramsOnly)
	schema := conditionSchema(params)

	mem := memory.NewGoAllocator()
	bldr := array.NewRecordBuilder(mem, schema)
	defer bldr.Release()

	for _, row := range rows {
		bldr.Field(0).(*array.Int64Builder).Append(int64(row.ConditionIdx))
		bldr.Field(1).(*array.Int64Builder).Append(int64(row.ChunkIdx))
		for i, p := range params {
			bldr.Field(2 + i).(*array.Float64Builder).Append(row.Params[p])
		}
	}
	rec := bldr.NewRecord()
	defer rec.Release()

	return writeRecord(path, schema, rec)
}

func writeRows(path string, rows []simulation.Row) error {
	paramsOnly := make([]map[string]float64, len(rows))
	for i, r := range rows {
		paramsOnly[i] = r.Params
	}
	params := paramColumns(paramsOnly)
	hasChoice := anyHasChoice(rows)
	schema := rowSchema(params, hasChoice)

	mem := memory.NewGoAllocator()
	bldr := array.NewRecordBuilder(mem, schema)
	defer bldr.Release()

	for _, row := range rows {
		col := 0
		bldr.Field(col).(*array.Int64Builder).Append(int64(row.ConditionIdx))
		col++
		bldr.Field(col).(*array.Int64Builder).Append(int64(row.TrialIdx))
		col++
		bldr.Field(col).(*array.Int64Builder).Append(int64(row.RankIdx))
		col++
		bldr.Field(col).(*array.Int64Builder).Append(int64(row.ItemIdx))
		col++
		bldr.Field(col).(*array.Float64Builder).Append(row.RT)
		col++
		if hasChoice {
			bldr.Field(col).(*array.Int8Builder).Append(row.Choice)
			col++
		}
		bldr.Field(col).(*array.Int64Builder).Append(int64(row.ChunkIdx))
		col++
		for _, p := range params {
			bldr.Field(col).(*array.Float64Builder).Append(row.Params[p])
			col++
		}
	}
	rec := bldr.NewRecord()
	defer rec.Release()

	return writeRecord(path, schema, rec)
}
