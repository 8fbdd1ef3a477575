package monitoring

import (
	"io"

	"github.com/syifan/goseth"
)

// DumpState serializes root as JSON into w, following fields down to
// maxDepth levels.
func DumpState(w io.Writer, root any, maxDepth int) error {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(root)
	serializer.SetMaxDepth(maxDepth)

	return serializer.Serialize(w)
}
