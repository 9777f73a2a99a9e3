package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	AdminCollection        *mongo.Collection
	CategoriesCollection   *mongo.Collection
	ToursCollection        *mongo.Collection
	HeroSlidesCollection   *mongo.Collection
	LandscapesCollection   *mongo.Collection
	TestimonialsCollection *mongo.Collection
	AwardsCollection       *mongo.Collection
	TeamMembersCollection  *mongo.Collection
	ContactCollection      *mongo.Collection
	EnquiriesCollection    *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("trippensdb")
	AdminCollection = database.Collection("admins")
	CategoriesCollection = database.Collection("categories")
	ToursCollection = database.Collection("tours")
	HeroSlidesCollection = database.Collection("heroslides")
	LandscapesCollection = database.Collection("landscapes")
	TestimonialsCollection = database.Collection("testimonials")
	AwardsCollection = database.Collection("awards")
	TeamMembersCollection = database.Collection("teammembers")
	ContactCollection = database.Collection("contact")
	EnquiriesCollection = database.Collection("enquiries")

	ensureIndexes()
}

// ensureIndexes backs the application-level uniqueness checks with real
// constraints so a create race still surfaces as a duplicate-key error.
func ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ciName := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}

	if _, err := AdminCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		log.Printf("admins index: %v", err)
	}
	if _, err := CategoriesCollection.Indexes().CreateOne(ctx, ciName); err != nil {
		log.Printf("categories index: %v", err)
	}
	if _, err := LandscapesCollection.Indexes().CreateOne(ctx, ciName); err != nil {
		log.Printf("landscapes index: %v", err)
	}
	if _, err := ToursCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "highlightStatus", Value: 1}},
	}); err != nil {
		log.Printf("tours index: %v", err)
	}
}
