package bootstrap

import (
	"log"
	"strconv"
	"time"

	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/Lloyd952/horror-haven/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Review{},
		&model.ReviewTag{},
		&model.Comment{},
	)
}

func SeedAdminUser(db *gorm.DB) (*model.User, error) {
	var count int64
	if err := db.Model(&model.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		var admin model.User
		if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
			return nil, err
		}
		return &admin, nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@horrorhaven.local",
		PasswordHash: string(hashedPasswordBytes),
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return nil, err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Username: admin")
	log.Println("   Password: admin123")

	return &adminUser, nil
}

type sampleReview struct {
	Title     string
	FilmTitle string
	Year      int
	Director  string
	Rating    int
	Body      string
	Tags      []string
}

var sampleReviews = []sampleReview{
	{
		Title:     "The Shining Review",
		FilmTitle: "The Shining",
		Year:      1980,
		Director:  "Stanley Kubrick",
		Rating:    5,
		Body:      `Stanley Kubrick's "The Shining" is a masterclass in psychological horror. Jack Nicholson delivers an iconic performance as Jack Torrance, a writer who descends into madness while caretaking the isolated Overlook Hotel. The film's ambiguity and atmospheric tension make it a timeless horror masterpiece.`,
		Tags:      []string{"psychological", "supernatural", "classic"},
	},
	{
		Title:     "Hereditary Review",
		FilmTitle: "Hereditary",
		Year:      2018,
		Director:  "Ari Aster",
		Rating:    4,
		Body:      `Ari Aster's "Hereditary" redefines modern horror with its psychological depth and family trauma themes. Toni Collette's performance is devastating, and the film's exploration of grief and inherited mental illness creates genuine terror.`,
		Tags:      []string{"psychological", "family", "modern"},
	},
	{
		Title:     "The Texas Chain Saw Massacre Review",
		FilmTitle: "The Texas Chain Saw Massacre",
		Year:      1974,
		Director:  "Tobe Hooper",
		Rating:    5,
		Body:      `Tobe Hooper's landmark film revolutionized horror cinema. Despite its title, it relies on atmosphere and psychological terror rather than gore. Leatherface remains one of cinema's most terrifying villains.`,
		Tags:      []string{"slasher", "classic", "cannibal"},
	},
}

// SeedSampleReviews creates a few published reviews owned by the admin
// user so a fresh development database has something to browse.
func SeedSampleReviews(db *gorm.DB, author *model.User) error {
	for _, sample := range sampleReviews {
		slug := service.Slugify(sample.FilmTitle, strconv.Itoa(sample.Year))

		var count int64
		if err := db.Model(&model.Review{}).
			Where("slug = ?", slug).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		now := time.Now()
		review := model.Review{
			Title:     sample.Title,
			Slug:      slug,
			AuthorID:  author.ID,
			FilmTitle: sample.FilmTitle,
			Year:      sample.Year,
			Director:  sample.Director,
			Rating:    sample.Rating,
			Body:      sample.Body,
			Status:    model.StatusPublished,
			CreatedOn: now,
		}

		if err := db.Create(&review).Error; err != nil {
			return err
		}

		for _, tag := range sample.Tags {
			if err := db.Create(&model.ReviewTag{ReviewID: review.ID, Tag: tag}).Error; err != nil {
				return err
			}
		}

		log.Printf("Seeded sample review %q", sample.FilmTitle)
	}

	return nil
}
