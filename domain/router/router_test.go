package router

import (
	"testing"

	"eamlab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_Scenarios(t *testing.T) {
	cases := []struct {
		name    string
		model   string
		lhs     map[string]bool
		want    Backend
		wantErr core.Kind
	}{
		{name: "ddm with A_upper", model: "ddm", lhs: map[string]bool{"A_upper": true}, want: BackendDDM2B},
		{name: "ddm with A", model: "ddm", lhs: map[string]bool{"A": true}, want: BackendDDM},
		{name: "rdm", model: "rdm", lhs: nil, want: BackendDDM2B},
		{name: "lca", model: "lca", lhs: nil, want: BackendLCAGI},
		{name: "lca-gi", model: "LCA-GI", lhs: nil, want: BackendLCAGI},
		{name: "ddm-1b ignores A_upper", model: "ddm-1b", lhs: map[string]bool{"A_upper": true}, want: BackendDDM},
		{name: "lba", model: "lba", lhs: nil, want: BackendDDM2B},
		{name: "lfm", model: "lfm", lhs: nil, want: BackendDDM2B},
		{name: "unknown", model: "foo", lhs: nil, wantErr: core.KindUnknownModel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Route(tc.model, tc.lhs)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, core.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
