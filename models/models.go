package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is the single back-office account.
type Admin struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Category groups tours; name is unique case-insensitively.
type Category struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	CoverImage   string             `json:"coverImage" bson:"coverImage"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ItineraryStep is one day of a tour programme.
type ItineraryStep struct {
	Day         int    `json:"day" bson:"day"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	ImageURL    string `json:"imageUrl" bson:"imageUrl"`
}

type FAQ struct {
	Q string `json:"q" bson:"q"`
	A string `json:"a" bson:"a"`
}

// Tour carries a denormalized categoryStatus mirror of its category's
// activeStatus so public listings filter on a single collection.
type Tour struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CategoryID      primitive.ObjectID `json:"categoryId" bson:"category"`
	TourName        string             `json:"tourName" bson:"tourName"`
	Days            int                `json:"days" bson:"days"`
	Nights          int                `json:"nights" bson:"nights"`
	TripCost        float64            `json:"tripCost" bson:"tripCost"`
	TripStyle       string             `json:"tripStyle" bson:"tripStyle"`
	Vehicle         string             `json:"vehicle" bson:"vehicle"`
	DrivingDistance string             `json:"drivingDistance" bson:"drivingDistance"`
	Landscapes      []string           `json:"landscapes" bson:"landscapes"`
	Activity        string             `json:"activity" bson:"activity"`
	UpcomingDates   []time.Time        `json:"upcomingDates" bson:"upcomingDates"`
	MainImageURL    string             `json:"mainImageUrl" bson:"mainImageUrl"`
	SubImageURLs    []string           `json:"subImageUrls" bson:"subImageUrls"`
	RouteMapURL     string             `json:"routeMapUrl" bson:"routeMapUrl"`
	Itinerary       []ItineraryStep    `json:"itinerary" bson:"itinerary"`
	FAQs            []FAQ              `json:"faqs" bson:"faqs"`
	ActiveStatus    bool               `json:"activeStatus" bson:"activeStatus"`
	CategoryStatus  bool               `json:"categoryStatus" bson:"categoryStatus"`
	HighlightStatus bool               `json:"highlightStatus" bson:"highlightStatus"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TourRef is the minimal tour identity used in highlight-cap conflicts.
type TourRef struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	TourName string             `json:"tourName" bson:"tourName"`
}

// CategoryRef is the joined category slice returned with admin tour rows.
type CategoryRef struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
}

// TourWithCategory is a tour row joined with its owning category.
type TourWithCategory struct {
	Tour     `bson:",inline"`
	Category CategoryRef `json:"category" bson:"categoryDoc"`
}

// HeroSlide is one hero-carousel entry. Visibility joins live to the
// category; the slide carries no status mirror.
type HeroSlide struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CategoryID   primitive.ObjectID `json:"categoryId" bson:"category"`
	ImageURL     string             `json:"imageUrl" bson:"imageUrl"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Landscape is the curated landscape page content, distinct from the
// fixed tag vocabulary below.
type Landscape struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	CoverImage   string             `json:"coverImage" bson:"coverImage"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Testimonial struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ClientName   string             `json:"clientName" bson:"clientName"`
	ClientImage  string             `json:"clientImage" bson:"clientImage"`
	TourName     string             `json:"tourName" bson:"tourName"`
	Review       string             `json:"review" bson:"review"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Award struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Image        string             `json:"image" bson:"image"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type TeamMember struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Post         string             `json:"post" bson:"post"`
	Description  string             `json:"description" bson:"description"`
	Image        string             `json:"image" bson:"image"`
	ActiveStatus bool               `json:"activeStatus" bson:"activeStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type AddressPair struct {
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
}

// Contact is the singleton contact-details document; it is upserted,
// never created twice.
type Contact struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Addresses []AddressPair      `json:"addresses" bson:"addresses"`
	Landline  string             `json:"landline" bson:"landline"`
	Email     string             `json:"email" bson:"email"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Enquiry channels.
const (
	ChannelEmail    = "email"
	ChannelWhatsapp = "whatsapp"
)

// Enquiry is an append-only lead record.
type Enquiry struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FullName  string             `json:"fullName" bson:"fullName"`
	Phone     string             `json:"phone" bson:"phone"`
	Email     string             `json:"email" bson:"email"`
	Message   string             `json:"message" bson:"message"`
	Channel   string             `json:"channel" bson:"channel"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
