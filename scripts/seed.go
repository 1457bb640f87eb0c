// Seed script for a fresh deployment.
//
// Inserts the grade 4 curriculum materials, a starter question bank and the
// demo accounts. Safe to re-run: existing rows are left untouched.
//
// Usage: go run scripts/seed.go

package main

import (
	"log"
	"os"

	"menara_math_backend/internal/config"
	"menara_math_backend/internal/model"
	"menara_math_backend/pkg/database"
	"menara_math_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	log.Println("Seeding materials...")
	materials := seedMaterials(db)

	log.Println("Seeding questions...")
	seedQuestions(db, materials)

	log.Println("Seeding demo accounts...")
	seedUsers(db)

	log.Println("Done")
}

func seedMaterials(db *gorm.DB) []model.Material {
	materials := []model.Material{
		{Title: "Bilangan Cacah", Description: "Membaca, menulis dan membandingkan bilangan cacah sampai 10.000", Grade: "4", Position: 0, IsActive: true},
		{Title: "Penjumlahan dan Pengurangan", Description: "Operasi penjumlahan dan pengurangan bilangan cacah", Grade: "4", Position: 1, IsActive: true},
		{Title: "Perkalian dan Pembagian", Description: "Operasi perkalian dan pembagian bilangan cacah", Grade: "4", Position: 2, IsActive: true},
		{Title: "Pecahan", Description: "Mengenal pecahan sederhana dan pecahan senilai", Grade: "4", Position: 3, IsActive: true},
	}

	for i := range materials {
		var existing model.Material
		err := db.Where("title = ?", materials[i].Title).First(&existing).Error
		if err == nil {
			materials[i] = existing
			continue
		}
		if err := db.Create(&materials[i]).Error; err != nil {
			log.Fatalf("seed material %q: %v", materials[i].Title, err)
		}
	}
	return materials
}

func seedQuestions(db *gorm.DB, materials []model.Material) {
	if len(materials) == 0 {
		return
	}

	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count > 0 {
		log.Println("questions already present, skipping")
		return
	}

	questions := []model.Question{
		{
			MaterialID: materials[0].ID, Difficulty: model.DifficultyEasy,
			Text: "Berapakah nilai tempat angka 5 pada bilangan 3.520?",
			OptA: "Satuan", OptB: "Puluhan", OptC: "Ratusan", OptD: "Ribuan",
			Correct: "C",
			Hint1:   "Hitung posisi angka 5 dari kanan.",
			Hint2:   "Posisi ketiga dari kanan adalah ratusan.",
			Hint3:   "3.520 terdiri dari 3 ribuan, 5 ratusan, 2 puluhan dan 0 satuan.",
			Explanation: "Angka 5 berada pada posisi ketiga dari kanan sehingga " +
				"nilai tempatnya adalah ratusan.",
		},
		{
			MaterialID: materials[0].ID, Difficulty: model.DifficultyMedium,
			Text: "Bilangan manakah yang lebih besar dari 4.875?",
			OptA: "4.857", OptB: "4.785", OptC: "4.878", OptD: "4.758",
			Correct: "C",
			Hint1:   "Bandingkan angka dari kiri ke kanan.",
			Hint2:   "Ribuannya sama, bandingkan ratusannya lalu puluhannya.",
			Hint3:   "4.878 memiliki puluhan 7 dan satuan 8, lebih besar dari 4.875.",
			Explanation: "4.878 lebih besar dari 4.875 karena pada posisi satuan " +
				"8 lebih besar dari 5.",
		},
		{
			MaterialID: materials[1].ID, Difficulty: model.DifficultyMedium,
			Text: "Hasil dari 1.250 + 875 adalah...",
			OptA: "2.025", OptB: "2.125", OptC: "2.115", OptD: "1.925",
			Correct: "B",
			Hint1:   "Jumlahkan satuan terlebih dahulu.",
			Hint2:   "1.250 + 800 = 2.050, lalu tambahkan 75.",
			Hint3:   "2.050 + 75 = 2.125.",
			Explanation: "1.250 + 875 = 2.125. Jumlahkan ratusan dulu lalu " +
				"sisanya agar lebih mudah.",
		},
		{
			MaterialID: materials[2].ID, Difficulty: model.DifficultyHard,
			Text: "Sebuah toko memiliki 24 kardus berisi 36 buku setiap kardusnya. Berapa jumlah seluruh buku?",
			OptA: "764", OptB: "864", OptC: "846", OptD: "884",
			Correct: "B",
			Hint1:   "Gunakan perkalian 24 x 36.",
			Hint2:   "24 x 36 = 24 x 30 + 24 x 6.",
			Hint3:   "720 + 144 = 864.",
			Explanation: "24 x 36 = 864. Pecah menjadi 24 x 30 = 720 dan " +
				"24 x 6 = 144 lalu jumlahkan.",
		},
	}

	if err := db.Create(&questions).Error; err != nil {
		log.Fatalf("seed questions: %v", err)
	}
}

func seedUsers(db *gorm.DB) {
	users := []struct {
		name     string
		nisn     string
		email    string
		password string
		role     model.UserRole
	}{
		{"Admin", "", "admin@menaramatematika.id", "admin12345", model.Admin},
		{"Bu Sari", "", "sari@menaramatematika.id", "guru12345", model.Teacher},
		{"Budi Santoso", "0054321098", "", "siswa12345", model.Student},
	}

	for _, u := range users {
		var existing model.User
		q := db.Where("email = ?", u.email)
		if u.role == model.Student {
			q = db.Where("nisn = ?", u.nisn)
		}
		if err := q.First(&existing).Error; err == nil {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user := model.User{
			Name:     u.name,
			NISN:     u.nisn,
			Email:    u.email,
			Password: string(hashed),
			Role:     u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("seed user %q: %v", u.name, err)
		}
	}
}
