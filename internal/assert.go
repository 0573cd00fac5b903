// Package internal holds helpers shared by the converter that are not part
// of the public layout API.
package internal

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Assert panics (through the ctx logger) when mustBeTrue is false. It guards
// invariants the layout structures make impossible to violate through the
// public constructors, e.g. a plane count above MaxPlanes.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed", extraArgs)
}
