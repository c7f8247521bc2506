package database

import (
	"fmt"
	"log"

	"acadmin/config"
	"acadmin/model"

	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(getEnv *config.EnviornmentVariable) error {
	log.Println("🌱 Starting database seeding...")

	if err := EnsureRootAdmin(s.db, getEnv); err != nil {
		return fmt.Errorf("failed to seed root admin: %w", err)
	}

	// Run seeds in order (respecting the scope chain)
	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	if err := s.SeedFaculties(); err != nil {
		return fmt.Errorf("failed to seed faculties: %w", err)
	}

	if err := s.SeedCareers(); err != nil {
		return fmt.Errorf("failed to seed careers: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedCommissions(); err != nil {
		return fmt.Errorf("failed to seed commissions: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedUniversities creates sample universities
func (s *Seeder) SeedUniversities() error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Universities already exist, skipping...")
		return nil
	}

	universities := []model.University{
		{
			Code:    "utn",
			Name:    "Universidad Tecnológica Nacional",
			Country: "Argentina",
			Website: "https://www.utn.edu.ar",
		},
		{
			Code:    "uba",
			Name:    "Universidad de Buenos Aires",
			Country: "Argentina",
			Website: "https://www.uba.ar",
		},
	}

	if err := s.db.Create(&universities).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d universities\n", len(universities))
	return nil
}

// SeedFaculties creates sample faculties
func (s *Seeder) SeedFaculties() error {
	var count int64
	if err := s.db.Model(&model.Faculty{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Faculties already exist, skipping...")
		return nil
	}

	faculties := []model.Faculty{
		{
			UniversityCode: "utn",
			Code:           "frm",
			Name:           "Facultad Regional Mendoza",
			City:           "Mendoza",
		},
		{
			UniversityCode: "utn",
			Code:           "frba",
			Name:           "Facultad Regional Buenos Aires",
			City:           "Buenos Aires",
		},
	}

	if err := s.db.Create(&faculties).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d faculties\n", len(faculties))
	return nil
}

// SeedCareers creates sample careers
func (s *Seeder) SeedCareers() error {
	var count int64
	if err := s.db.Model(&model.Career{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Careers already exist, skipping...")
		return nil
	}

	careers := []model.Career{
		{
			UniversityCode: "utn",
			FacultyCode:    "frm",
			Code:           "isi",
			Name:           "Ingeniería en Sistemas de Información",
		},
		{
			UniversityCode: "utn",
			FacultyCode:    "frba",
			Code:           "isi",
			Name:           "Ingeniería en Sistemas de Información",
		},
	}

	if err := s.db.Create(&careers).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d careers\n", len(careers))
	return nil
}

// SeedCourses creates sample courses
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	courses := []model.Course{
		{
			UniversityCode: "utn",
			FacultyCode:    "frm",
			CareerCode:     "isi",
			Code:           "programacion-1",
			Name:           "Programación I",
			Year:           1,
		},
		{
			UniversityCode: "utn",
			FacultyCode:    "frm",
			CareerCode:     "isi",
			Code:           "analisis-matematico-1",
			Name:           "Análisis Matemático I",
			Year:           1,
		},
		{
			UniversityCode: "utn",
			FacultyCode:    "frba",
			CareerCode:     "isi",
			Code:           "programacion-1",
			Name:           "Programación I",
			Year:           1,
		},
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d courses\n", len(courses))
	return nil
}

// SeedCommissions creates sample commissions
func (s *Seeder) SeedCommissions() error {
	var count int64
	if err := s.db.Model(&model.Commission{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Commissions already exist, skipping...")
		return nil
	}

	commissions := []model.Commission{
		{
			UniversityCode: "utn",
			FacultyCode:    "frm",
			CareerCode:     "isi",
			CourseCode:     "programacion-1",
			Code:           "1k1",
			Name:           "Comisión 1K1",
			Year:           2026,
			Shift:          "morning",
		},
		{
			UniversityCode: "utn",
			FacultyCode:    "frm",
			CareerCode:     "isi",
			CourseCode:     "programacion-1",
			Code:           "1k2",
			Name:           "Comisión 1K2",
			Year:           2026,
			Shift:          "evening",
		},
	}

	if err := s.db.Create(&commissions).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d commissions\n", len(commissions))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB, getEnv *config.EnviornmentVariable) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll(getEnv)
}
