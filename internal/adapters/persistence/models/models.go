package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Closed enumerations
// ============================================================

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
	RoleGuide    Role = "Guide"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleAdmin, RoleGuide:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// TourStatus is the closed set of tour lifecycle states.
type TourStatus string

const (
	TourScheduled TourStatus = "Scheduled"
	TourActive    TourStatus = "Active"
	TourCompleted TourStatus = "Completed"
	TourCancelled TourStatus = "Cancelled"
)

// ParseTourStatus validates a tour status string against the closed set.
func ParseTourStatus(s string) (TourStatus, error) {
	switch ts := TourStatus(s); ts {
	case TourScheduled, TourActive, TourCompleted, TourCancelled:
		return ts, nil
	default:
		return "", fmt.Errorf("unknown tour status %q", s)
	}
}

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

// ParseBookingStatus validates a booking status string against the closed set.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch bs := BookingStatus(s); bs {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return bs, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// ============================================================
// Auth & User tables
// ============================================================

// User represents users table. Deactivated accounts keep their row
// (IsActive=false) and are excluded from every lookup.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FirstName    string     `gorm:"size:100;not null" json:"firstName"`
	LastName     string     `gorm:"size:100;not null" json:"lastName"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Phone        *string    `gorm:"size:20" json:"phone"`
	Address      *string    `gorm:"size:500" json:"address"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	Role         Role       `gorm:"size:20;not null;default:'Customer'" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserInfo is the public-safe projection of a User (no password hash).
type UserInfo struct {
	ID          uint       `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

func (u *User) ToInfo() *UserInfo {
	return &UserInfo{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		Phone:       u.Phone,
		Address:     u.Address,
		DateOfBirth: u.DateOfBirth,
	}
}

// FullName composes the display name embedded in access tokens.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ============================================================
// Record-store tables
// ============================================================

// Destination represents destinations table
type Destination struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Country     string    `gorm:"size:100;not null" json:"country"`
	City        string    `gorm:"size:100;not null" json:"city"`
	ImageURL    *string   `gorm:"size:500" json:"imageUrl"`
	Price       float64   `gorm:"type:decimal(15,2);not null" json:"price"`
	Duration    int       `gorm:"not null" json:"duration"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Destination) TableName() string {
	return "destinations"
}

// Guide represents guides table
type Guide struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"size:100;not null" json:"firstName"`
	LastName        string    `gorm:"size:100;not null" json:"lastName"`
	Email           string    `gorm:"size:255;not null" json:"email"`
	Phone           string    `gorm:"size:20;not null" json:"phone"`
	Specialization  string    `gorm:"size:255;not null" json:"specialization"`
	Languages       string    `gorm:"size:500;not null" json:"languages"`
	ExperienceYears int       `gorm:"default:0" json:"experienceYears"`
	IsAvailable     bool      `gorm:"default:true" json:"isAvailable"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Guide) TableName() string {
	return "guides"
}

// Customer represents customers table
type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null" json:"firstName"`
	LastName    string    `gorm:"size:100;not null" json:"lastName"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Phone       string    `gorm:"size:20;not null" json:"phone"`
	Address     string    `gorm:"size:500;not null" json:"address"`
	DateOfBirth time.Time `gorm:"not null" json:"dateOfBirth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

// Tour represents tours table
type Tour struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Description         *string    `gorm:"type:text" json:"description"`
	DestinationID       uint       `gorm:"not null;index" json:"destinationId"`
	GuideID             *uint      `gorm:"index" json:"guideId"`
	StartDate           time.Time  `gorm:"not null" json:"startDate"`
	EndDate             time.Time  `gorm:"not null" json:"endDate"`
	MaxParticipants     int        `gorm:"not null;default:20" json:"maxParticipants"`
	CurrentParticipants int        `gorm:"not null;default:0" json:"currentParticipants"`
	Price               float64    `gorm:"type:decimal(15,2);not null" json:"price"`
	Status              TourStatus `gorm:"size:20;not null;default:'Scheduled'" json:"status"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
	Guide       *Guide       `gorm:"foreignKey:GuideID" json:"guide,omitempty"`
}

func (Tour) TableName() string {
	return "tours"
}

// Booking represents bookings table
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Reference       string        `gorm:"size:40;uniqueIndex;not null" json:"reference"`
	CustomerID      uint          `gorm:"not null;index" json:"customerId"`
	TourID          uint          `gorm:"not null;index" json:"tourId"`
	BookingDate     time.Time     `gorm:"not null" json:"bookingDate"`
	TravelDate      time.Time     `gorm:"not null" json:"travelDate"`
	NumberOfPeople  int           `gorm:"not null;default:1" json:"numberOfPeople"`
	TotalAmount     float64       `gorm:"type:decimal(15,2);not null" json:"totalAmount"`
	Status          BookingStatus `gorm:"size:20;not null;default:'Pending'" json:"status"`
	SpecialRequests *string       `gorm:"type:text" json:"specialRequests"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Tour     *Tour     `gorm:"foreignKey:TourID" json:"tour,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Destination{},
		&Guide{},
		&Customer{},
		&Tour{},
		&Booking{},
	)
}
