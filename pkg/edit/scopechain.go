package edit

import (
	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// EnsureScope returns a model in which the scope named by scopePath exists,
// creating one Package element per missing ancestor. New packages are
// appended in root-to-leaf order so a later full scan always encounters a
// parent before anything that references it. When the whole chain already
// exists the result is a shallow clone and the created count is zero.
func EnsureScope(base *model.Model, scopePath string, in *model.Interner) (*model.Model, int) {
	if in == nil {
		in = model.NewInterner()
	}

	// Walk target to root, collecting the ancestors that do not exist yet.
	var missing []string

	for path := scopePath; path != ""; path = model.ParentPath(path) {
		if !base.Has(path) {
			missing = append(missing, path)
		}
	}

	if len(missing) == 0 {
		return base.ShallowClone(), 0
	}

	result := base.ShallowClone()

	// missing is leaf-to-root; append in reverse for root-to-leaf order.
	for idx := len(missing) - 1; idx >= 0; idx-- {
		path := missing[idx]

		result.AddElement(&model.Element{
			ID:       in.Intern(path),
			Name:     model.LocalName(path),
			Kind:     model.KindPackage,
			ParentID: in.Intern(model.ParentPath(path)),
		})
	}

	return result, len(missing)
}
