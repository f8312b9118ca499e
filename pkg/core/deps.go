package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-screens/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-screens/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-screens/pkg/relay"
	"github.com/joeydtaylor/steeze-screens/pkg/screen"
	httpx "github.com/joeydtaylor/steeze-screens/pkg/transport/httpx"
)

type BuildDeps struct {
	Auth     *auth.Middleware
	LogMW    *logger.Middleware
	Metrics  http.Handler
	Audit    relay.Publisher
	Router   httpx.Router
	Resolver screen.Resolver
}
