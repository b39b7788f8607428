package main

import (
	"context"
	"log"
	"time"

	common_models "go-cra/internal/common/models"
	"go-cra/internal/config"
	"go-cra/internal/features/settings"
	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the admin account and the default option lists into a fresh database.
// Safe to run repeatedly: existing documents are left alone.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)

	seedAdmin(ctx, db)
	seedOptionLists(ctx, db)

	log.Println("Seeding complete")
}

func seedAdmin(ctx context.Context, db *mongo.Database) {
	users := db.Collection("users")

	count, err := users.CountDocuments(ctx, bson.M{"username": "admin"})
	if err != nil {
		log.Fatalf("Failed to check admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	admin := common_models.User{
		ID:        primitive.NewObjectID(),
		Username:  "admin",
		Password:  string(hashed),
		Email:     "admin@localhost",
		FullName:  "Administrator",
		Role:      workflow.RoleAdmin,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := users.InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Println("Created admin user (password: admin123, change it)")
}

func seedOptionLists(ctx context.Context, db *mongo.Database) {
	coll := db.Collection("settings")

	count, err := coll.CountDocuments(ctx, bson.M{"type": settings.SettingsTypeOptionLists})
	if err != nil {
		log.Fatalf("Failed to check option lists: %v", err)
	}
	if count > 0 {
		log.Println("Option lists already exist, skipping")
		return
	}

	doc := settings.Settings{
		Type:        settings.SettingsTypeOptionLists,
		OptionLists: settings.DefaultOptionLists(),
		UpdatedAt:   time.Now(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		log.Fatalf("Failed to seed option lists: %v", err)
	}
	log.Println("Seeded default option lists")
}
