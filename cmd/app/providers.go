package main

import (
	"github.com/yanqian/faq-pipeline/internal/domain/corrector"
	"github.com/yanqian/faq-pipeline/internal/domain/mapper"
	"github.com/yanqian/faq-pipeline/internal/infra/config"
)

func provideCorrectorConfig(cfg *config.Config) corrector.Config {
	return corrector.Config{
		FAQColumn: cfg.Pipeline.FAQColumn,
	}
}

func provideMapperConfig(cfg *config.Config) mapper.Config {
	keywords := make([]mapper.KeywordMapping, 0, len(cfg.Pipeline.Keywords))
	for _, kw := range cfg.Pipeline.Keywords {
		keywords = append(keywords, mapper.KeywordMapping{Keyword: kw.Keyword, Target: kw.Target})
	}
	if len(keywords) == 0 {
		keywords = mapper.DefaultKeywords()
	}
	return mapper.Config{
		Threshold:          cfg.Pipeline.Threshold,
		UseKeywordFallback: cfg.Pipeline.KeywordFallback,
		Keywords:           keywords,
		FAQColumn:          cfg.Pipeline.FAQColumn,
	}
}
