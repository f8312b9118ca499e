package bundlefx

import (
	"go.uber.org/fx"

	"github.com/joeydtaylor/steeze-screens/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-screens/pkg/middleware/logger"
)

// Module bundles the ambient middleware providers for apps that build
// their own router instead of using screenfx.
var Module = fx.Options(
	auth.Module,
	logger.Module,
)
