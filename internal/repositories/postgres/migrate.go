package postgres

import (
	"context"
	"fmt"

	"github.com/quizdesk/quiz-service/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InitSchema brings the store up to the current schema and seeds first-run
// data. AutoMigrate is additive and idempotent, so upgrading an existing store
// in place only adds missing columns. The process cannot run without its
// schema, so callers must treat an error as fatal.
func InitSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Settings{},
		&models.Question{},
		&models.Attempt{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	if err := seed(ctx, db); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	return nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	var settingsCount int64
	if err := db.WithContext(ctx).Model(&models.Settings{}).Count(&settingsCount).Error; err != nil {
		return err
	}
	if settingsCount == 0 {
		if err := db.WithContext(ctx).Create(&models.Settings{
			ID:      models.SettingsID,
			AppName: models.DefaultAppName,
		}).Error; err != nil {
			return err
		}
	}

	var questionCount int64
	if err := db.WithContext(ctx).Model(&models.Question{}).Count(&questionCount).Error; err != nil {
		return err
	}
	if questionCount > 0 {
		return nil
	}

	questions := starterQuestions()
	return db.WithContext(ctx).Create(&questions).Error
}

func starterQuestions() []models.Question {
	return []models.Question{
		{
			Label: "Quelle fonction ne fait pas partie des fonctions de la peau ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Protection contre les agressions extérieures",
				"Production d'hormones sexuelles",
				"Régulation de la température",
			}),
			CorrectIndex: 1,
		},
		{
			Label: "Quelle glande produit le sébum qui protège la peau et les cheveux ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Glande sudoripare",
				"Glande sébacée",
				"Glande lacrymale",
			}),
			CorrectIndex: 1,
		},
		{
			Label: "Quelle cellule de l'épiderme est responsable de la pigmentation de la peau ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Les kératinocytes",
				"Les mélanocytes",
				"Les fibroblastes",
			}),
			CorrectIndex: 1,
		},
		{
			Label: "Quel type de soin est principalement utilisé pour stimuler le renouvellement cellulaire de la couche cornée ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Le gommage/exfoliation",
				"L'hydratation",
				"La protection solaire",
			}),
			CorrectIndex: 0,
		},
		{
			Label: "Lequel des énoncés suivants est vrai concernant les ongles ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Les ongles sont constitués de cellules mortes kératinisées",
				"Les ongles sont alimentés directement par des vaisseaux sanguins dans la lunule",
				"Les ongles repoussent grâce aux glandes sudoripares",
			}),
			CorrectIndex: 0,
		},
		{
			Label: "Quelles sont les 3 couches de l'épiderme de la plus superficielle à la plus profonde ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Épiderme - derme - hypoderme",
				"Derme - épiderme - hypoderme",
				"Hypoderme - derme - épiderme",
			}),
			CorrectIndex: 0,
		},
		{
			Label: "À quoi sert la jonction dermo-épidermique ?",
			Choices: datatypes.NewJSONSlice([]string{
				"À faire circuler le sang",
				"Une zone d'échanges entre le derme et l'épiderme",
				"Une zone d'échanges entre l'hypoderme et le derme",
			}),
			CorrectIndex: 1,
		},
		{
			Label: "Le corps est composé d'environ de combien de litres d'eau ?",
			Choices: datatypes.NewJSONSlice([]string{
				"65%",
				"70%",
				"60%",
			}),
			CorrectIndex: 2,
		},
		{
			Label: "Quelles sont les 3 phases de la pousse du poil ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Anagène - catagène - télogène",
				"Catagène - anagène - télophase",
				"Anaphase - télophase - anaphase",
			}),
			CorrectIndex: 0,
		},
		{
			Label: "Vrai ou faux : un produit de cosmétique sert à embellir ?",
			Choices: datatypes.NewJSONSlice([]string{
				"Vrai",
				"Faux",
			}),
			CorrectIndex: 1,
		},
	}
}
