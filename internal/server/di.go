package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/company_compare/internal/biz"
	"github.com/iWorld-y/company_compare/internal/data"
	"github.com/iWorld-y/company_compare/internal/llm"
	"github.com/iWorld-y/company_compare/internal/service"
)

// ProviderSet 是对比服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewComparisonRepo,

	// LLM providers
	llm.NewChatModel,
	llm.NewClient,
	wire.Bind(new(biz.Comparer), new(*llm.Client)),

	// UseCase providers
	biz.NewCompareUseCase,

	// Service providers
	service.NewCompareService,
	wire.Bind(new(service.CompareUseCase), new(*biz.CompareUseCase)),
)
