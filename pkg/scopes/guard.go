package scopes

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// DefaultGuardRatio is the fraction of a scope's direct children a fragment
// must at least match before a scope replacement is allowed without force.
const DefaultGuardRatio = 0.5

// ErrReplaceLooksDestructive is returned by ReplaceGuard when a scope
// replacement would discard far more elements than the fragment provides.
var ErrReplaceLooksDestructive = errors.New("scope replacement looks destructive")

// ReplaceGuard checks a requested scope replacement for accidental data
// loss: a fragment much smaller than the scope it is about to wipe usually
// means the author exported a partial model by mistake. The guard is
// advisory; the merge engine never applies it on its own, and force skips
// it entirely.
func ReplaceGuard(m *model.Model, scope string, fragmentElements int, ratio float64, force bool) error {
	if force {
		return nil
	}

	if ratio <= 0 {
		ratio = DefaultGuardRatio
	}

	existing := len(m.DirectChildren(scope))
	if existing == 0 {
		return nil
	}

	if float64(fragmentElements) >= float64(existing)*ratio {
		return nil
	}

	return fmt.Errorf(
		"%w: %s existing elements under %q, fragment provides only %s (use force to override)",
		ErrReplaceLooksDestructive,
		humanize.Comma(int64(existing)),
		scope,
		humanize.Comma(int64(fragmentElements)),
	)
}
