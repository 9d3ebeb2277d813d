package http

import (
	"go.uber.org/fx"

	"plume/internal/delivery/http/handler"
	"plume/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewHealthHandler,
		handler.NewCatalogHandler,
		handler.NewContractHandler,
		handler.NewTemplateHandler,
		handler.NewDraftHandler,
		handler.NewSigningHandler,
		handler.NewPreferenceHandler,
		handler.NewActivityHandler,
		router.NewRouter,
	),
)
