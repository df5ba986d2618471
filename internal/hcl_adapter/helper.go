package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/cladegrid/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder may hand back zero-width placeholder expressions, so a nil
// check alone is not enough: a real attribute occupies bytes in the file.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		ctxlog.FromContext(ctx).Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
