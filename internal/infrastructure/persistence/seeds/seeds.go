package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"medlog/internal/domain/user"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/logger"
)

// SeedFile is the YAML document consumed by the seed command. It bootstraps
// a fresh install with sites, their terminals, and staff accounts.
type SeedFile struct {
	Sites []SeedSite `yaml:"sites"`
	Users []SeedUser `yaml:"users"`
}

type SeedSite struct {
	Name      string   `yaml:"name"`
	Terminals []string `yaml:"terminals"`
}

type SeedUser struct {
	Email    string   `yaml:"email"`
	Name     string   `yaml:"name"`
	Password string   `yaml:"password"`
	Role     string   `yaml:"role"`
	Sites    []string `yaml:"sites"`
}

// SeedFromFile loads the YAML seed file and applies it. Seeding is
// idempotent; existing rows are matched by natural key and left alone.
func SeedFromFile(db *gorm.DB, path string, hasher user.PasswordHasher, log logger.Interface) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	siteIDs := make(map[string]uint)

	for _, seedSite := range file.Sites {
		siteModel := models.SiteModel{Name: seedSite.Name}
		if err := db.FirstOrCreate(&siteModel, models.SiteModel{Name: seedSite.Name}).Error; err != nil {
			return fmt.Errorf("failed to seed site %q: %w", seedSite.Name, err)
		}
		siteIDs[seedSite.Name] = siteModel.ID

		for _, terminalName := range seedSite.Terminals {
			terminalModel := models.TerminalModel{
				SiteID: siteModel.ID,
				Name:   terminalName,
				Active: true,
			}
			err := db.FirstOrCreate(&terminalModel, models.TerminalModel{
				SiteID: siteModel.ID,
				Name:   terminalName,
			}).Error
			if err != nil {
				return fmt.Errorf("failed to seed terminal %q: %w", terminalName, err)
			}
		}

		log.Infow("seeded site", "name", seedSite.Name, "terminals", len(seedSite.Terminals))
	}

	for _, seedUser := range file.Users {
		role := user.Role(seedUser.Role)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q for user %q", seedUser.Role, seedUser.Email)
		}

		var existing models.UserModel
		err := db.Where("email = ?", seedUser.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up user %q: %w", seedUser.Email, err)
		}

		hash, err := hasher.Hash(seedUser.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", seedUser.Email, err)
		}

		userModel := models.UserModel{
			Email:        seedUser.Email,
			Name:         seedUser.Name,
			PasswordHash: hash,
			Role:         seedUser.Role,
			Active:       true,
		}
		if err := db.Create(&userModel).Error; err != nil {
			return fmt.Errorf("failed to seed user %q: %w", seedUser.Email, err)
		}

		for _, siteName := range seedUser.Sites {
			siteID, ok := siteIDs[siteName]
			if !ok {
				return fmt.Errorf("user %q references unknown site %q", seedUser.Email, siteName)
			}
			access := models.AuditorSiteAccessModel{UserID: userModel.ID, SiteID: siteID}
			err := db.FirstOrCreate(&access, models.AuditorSiteAccessModel{
				UserID: userModel.ID,
				SiteID: siteID,
			}).Error
			if err != nil {
				return fmt.Errorf("failed to seed site access for %q: %w", seedUser.Email, err)
			}
		}

		log.Infow("seeded user", "email", seedUser.Email, "role", seedUser.Role)
	}

	return nil
}
