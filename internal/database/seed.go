package database

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

// initialCategories is the baseline category list created on first boot
var initialCategories = []string{
	"tecnologia",
	"educação",
	"entretenimento",
	"esportes",
	"saúde",
	"finanças",
	"marketing",
	"vendas",
	"recursos humanos",
	"logística",
	"jurídico",
	"segurança da informação",
	"infraestrutura",
	"desenvolvimento de software",
	"devops",
	"inteligência artificial",
	"machine learning",
	"ciência de dados",
	"análise de dados",
	"produtividade",
	"design",
	"ux",
	"ui",
	"administração",
	"gestão de projetos",
	"suporte técnico",
	"atendimento ao cliente",
	"comunicação",
	"publicidade",
	"comércio exterior",
	"e-commerce",
	"operacional",
	"engenharia",
	"qualidade",
	"compliance",
	"auditoria",
	"governança",
	"mobilidade",
	"cloud computing",
	"iot",
	"automação",
	"robótica",
	"energia",
	"meio ambiente",
	"sustentabilidade",
	"agricultura",
	"indústria",
	"telecomunicações",
	"biotecnologia",
	"pesquisa",
}

// SeedCategories inserts the baseline categories, skipping ones that
// already exist so reboots are idempotent
func SeedCategories(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	for _, name := range initialCategories {
		category := domain.Category{Name: domain.NormalizeCategoryName(name)}
		if err := db.WithContext(ctx).
			Where("name = ?", category.Name).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	logger.Info("Category seed completed", zap.Int("total", len(initialCategories)))
	return nil
}
