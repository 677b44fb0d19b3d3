package summary

import (
	"testing"

	"eamlab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_GroupAndPivotWider(t *testing.T) {
	data := Table{
		{"cond": 1, "item": 1, "rt": 1.0},
		{"cond": 1, "item": 2, "rt": 2.0},
		{"cond": 2, "item": 1, "rt": 3.0},
		{"cond": 2, "item": 2, "rt": 4.0},
	}
	spec := Spec{{
		Aggregations: []Aggregation{Named("mean_rt", Mean("rt"))},
		By:           []string{"cond", "item"},
		WiderBy:      []string{"cond"},
	}}

	out, err := Apply(spec, data)
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)

	byCond := map[any]*AppliedRow{}
	for _, r := range out.Rows {
		byCond[r.Identifiers["cond"]] = r
	}

	assert.Equal(t, 1.0, byCond[1].Values["mean_rt_item_1"])
	assert.Equal(t, 2.0, byCond[1].Values["mean_rt_item_2"])
	assert.Equal(t, 3.0, byCond[2].Values["mean_rt_item_1"])
	assert.Equal(t, 4.0, byCond[2].Values["mean_rt_item_2"])
}

func TestApply_ComposeJoinsOnWiderBy(t *testing.T) {
	data := Table{
		{"cond": 1, "item": 1, "rt": 1.0, "choice": 1.0},
		{"cond": 1, "item": 2, "rt": 2.0, "choice": -1.0},
	}
	rtSpec := Spec{{
		Aggregations: []Aggregation{Named("mean_rt", Mean("rt"))},
		By:           []string{"cond", "item"},
		WiderBy:      []string{"cond"},
	}}
	choiceSpec := Spec{{
		Aggregations: []Aggregation{Named("p_upper", ProportionWhere(func(r Row) bool {
			v, _ := toFloat(r["choice"])
			return v > 0
		}))},
		By:      []string{"cond", "item"},
		WiderBy: []string{"cond"},
	}}

	out, err := Apply(Compose(rtSpec, choiceSpec), data)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	row := out.Rows[0]
	assert.Equal(t, 1.0, row.Values["mean_rt_item_1"])
	assert.Equal(t, 1.0, row.Values["p_upper_item_1"])
	assert.Equal(t, 0.0, row.Values["p_upper_item_2"])
}

func TestJoinSummaryTables_WiderByMismatch(t *testing.T) {
	a := &AppliedTable{WiderBy: []string{"cond"}}
	b := &AppliedTable{WiderBy: []string{"item"}}
	_, err := JoinSummaryTables(a, b)
	require.Error(t, err)
	assert.Equal(t, core.KindWiderByMismatch, core.KindOf(err))
}

func TestApply_EmptySpecIsConfigInvalid(t *testing.T) {
	_, err := Apply(nil, Table{})
	require.Error(t, err)
	assert.Equal(t, core.KindConfigInvalid, core.KindOf(err))
}
