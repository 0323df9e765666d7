package analyzer

import (
	"strconv"

	"github.com/mcncl/jsonlens/internal/models"
)

// rootPath is the key under which the document root's type is recorded.
const rootPath = "root"

// Collect walks v once, recording every member path in Keys, the type of
// every node in Types and the length of every array in ArrayLengths.
// Paths start empty, so top-level keys appear unprefixed. Depth and Size
// are left for the caller.
func (a *Analyzer) Collect(v models.Value) (models.Analysis, error) {
	analysis := models.NewAnalysis()
	if err := a.collect(v, "", 0, &analysis); err != nil {
		return models.Analysis{}, err
	}
	return analysis, nil
}

func (a *Analyzer) collect(v models.Value, path string, level int, out *models.Analysis) error {
	key := path
	if key == "" {
		key = rootPath
	}
	out.Types.Set(key, v.TypeName())

	switch v.Kind {
	case models.Array:
		out.ArrayLengths.Set(key, len(v.Items))
		for i, item := range v.Items {
			if err := a.checkDepth(level + 1); err != nil {
				return err
			}
			if err := a.collect(item, path+"["+strconv.Itoa(i)+"]", level+1, out); err != nil {
				return err
			}
		}
	case models.Object:
		if v.Members == nil {
			return nil
		}
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			memberPath := pair.Key
			if path != "" {
				memberPath = path + "." + pair.Key
			}
			out.Keys = append(out.Keys, memberPath)
			if err := a.checkDepth(level + 1); err != nil {
				return err
			}
			if err := a.collect(pair.Value, memberPath, level+1, out); err != nil {
				return err
			}
		}
	case models.Null, models.Bool, models.Number, models.String:
		// type already recorded
	}
	return nil
}
