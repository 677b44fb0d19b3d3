// Package router implements mapping a user-declared model name and the
// set of formula LHS names to a concrete kernel backend.
package router

import (
	"strings"

	"eamlab/domain/core"
)

// Backend is the concrete kernel family a config resolves to.
type Backend string

const (
	BackendDDM   Backend = "ddm"
	BackendDDM2B Backend = "ddm_2b"
	BackendLCAGI Backend = "lca_gi"
)

// Route applies the model-name detectors in order. model is matched
// case-insensitively; lhsNames (every LHS across all formula tiers plus
// prior_params keys) is matched case-sensitively.
func Route(model string, lhsNames map[string]bool) (Backend, error) {
	m := strings.ToLower(strings.TrimSpace(model))

	var fired []Backend

	switch m {
	case "ddm-2b", "rdm", "lfm", "lba":
		fired = append(fired, BackendDDM2B)
	case "ddm":
		if lhsNames["A_upper"] {
			fired = append(fired, BackendDDM2B)
		} else {
			fired = append(fired, BackendDDM)
		}
	case "ddm-1b":
		fired = append(fired, BackendDDM)
	}
	if m == "lca" || m == "lca-gi" {
		fired = append(fired, BackendLCAGI)
	}

	switch len(fired) {
	case 0:
		return "", core.New(core.KindUnknownModel, "unrecognized model \""+model+"\"")
	case 1:
		return fired[0], nil
	default:
		return "", core.New(core.KindAmbiguousModel, "model \""+model+"\" matched more than one backend detector; specify the backend directly")
	}
}
