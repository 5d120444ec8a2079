//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/polyglot-faq/internal/bootstrap"
	"github.com/yanqian/polyglot-faq/internal/domain/faq"
	"github.com/yanqian/polyglot-faq/internal/infra/config"
	httpiface "github.com/yanqian/polyglot-faq/internal/interface/http"
	"github.com/yanqian/polyglot-faq/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideFAQRepository,
		provideResponseCache,
		provideTranslator,
		provideTranslationGateway,
		faq.NewRecordStore,
		faq.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
