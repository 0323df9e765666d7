package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// indexSegment matches a whole path segment of the form [N].
var indexSegment = regexp.MustCompile(`^\[(\d+)\]$`)

// Resolve walks v along path, which is split on "." only. A segment that
// is exactly "[N]" indexes an array; any other segment names an object
// member. "items[0]" is therefore a member name, and "items.[0]" is
// required to index.
//
// A null node, a type mismatch, a missing key or an out-of-range index
// yields found=false. The final node may itself be null.
func (a *Analyzer) Resolve(v models.Value, path string) (value models.Value, found bool, err error) {
	segments := strings.Split(path, ".")
	if limit := a.config.Limits.MaxDepth; limit > 0 && len(segments) > limit {
		return models.Value{}, false, errors.NewDepthError(len(segments), limit)
	}

	current := v
	for _, segment := range segments {
		if current.Kind == models.Null {
			return models.Value{}, false, nil
		}

		if m := indexSegment.FindStringSubmatch(segment); m != nil {
			if current.Kind != models.Array {
				return models.Value{}, false, nil
			}
			index, convErr := strconv.Atoi(m[1])
			if convErr != nil || index >= len(current.Items) {
				return models.Value{}, false, nil
			}
			current = current.Items[index]
			continue
		}

		if current.Kind != models.Object {
			return models.Value{}, false, nil
		}
		next, ok := current.Get(segment)
		if !ok {
			return models.Value{}, false, nil
		}
		current = next
	}
	return current, true, nil
}
