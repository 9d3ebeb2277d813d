package usecase

import "go.uber.org/fx"

var Module = fx.Module("usecase",
	fx.Provide(NewActivityUsecase),
	fx.Provide(NewContractUsecase),
	fx.Provide(NewTemplateUsecase),
	fx.Provide(NewSigningUsecase),
	fx.Provide(NewDraftUsecase),
	fx.Provide(NewPreferenceUsecase),
)
