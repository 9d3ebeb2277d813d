package repository

import (
	"go.uber.org/fx"
)

var Module = fx.Module("repository",
	fx.Provide(NewContractRepository),
	fx.Provide(NewTemplateRepository),
	fx.Provide(NewSessionRepository),
	fx.Provide(NewFlowStateRepository),
	fx.Provide(NewDraftRepository),
	fx.Provide(NewPreferenceRepository),
	fx.Provide(NewActivityRepository),
)
