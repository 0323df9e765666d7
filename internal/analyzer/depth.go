package analyzer

import "github.com/mcncl/jsonlens/internal/models"

// Depth returns the nesting depth of v: zero for a scalar or an empty
// container, otherwise one more than the deepest child.
func (a *Analyzer) Depth(v models.Value) (int, error) {
	return a.depth(v, 0)
}

func (a *Analyzer) depth(v models.Value, current int) (int, error) {
	deepest := current
	visit := func(child models.Value) error {
		if err := a.checkDepth(current + 1); err != nil {
			return err
		}
		d, err := a.depth(child, current+1)
		if err != nil {
			return err
		}
		if d > deepest {
			deepest = d
		}
		return nil
	}

	switch v.Kind {
	case models.Array:
		for _, item := range v.Items {
			if err := visit(item); err != nil {
				return 0, err
			}
		}
	case models.Object:
		if v.Members == nil {
			return current, nil
		}
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			if err := visit(pair.Value); err != nil {
				return 0, err
			}
		}
	case models.Null, models.Bool, models.Number, models.String:
		return current, nil
	}
	return deepest, nil
}
