//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/faq-pipeline/internal/bootstrap"
	"github.com/yanqian/faq-pipeline/internal/domain/corrector"
	"github.com/yanqian/faq-pipeline/internal/domain/mapper"
	"github.com/yanqian/faq-pipeline/internal/infra/config"
	"github.com/yanqian/faq-pipeline/internal/infra/matcher"
	httpiface "github.com/yanqian/faq-pipeline/internal/interface/http"
	"github.com/yanqian/faq-pipeline/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCorrectorConfig,
		provideMapperConfig,
		matcher.NewTokenSort,
		corrector.NewService,
		mapper.NewService,
		wire.Bind(new(mapper.Matcher), new(*matcher.TokenSort)),
		httpiface.NewPipelineHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
