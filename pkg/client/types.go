package client

import "time"

// The wire types mirror the server's JSON contracts. They are declared
// here rather than imported so the client stays importable without
// pulling in the server's persistence layer.

// UserInfo is the public account projection returned by the API.
type UserInfo struct {
	ID          uint       `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         *UserInfo `json:"user"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// Destination mirrors the destinations resource.
type Destination struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	ImageURL    *string   `json:"imageUrl"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Guide mirrors the guides resource.
type Guide struct {
	ID              uint      `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Specialization  string    `json:"specialization"`
	Languages       string    `json:"languages"`
	ExperienceYears int       `json:"experienceYears"`
	IsAvailable     bool      `json:"isAvailable"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Customer mirrors the customers resource.
type Customer struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Tour mirrors the tours resource.
type Tour struct {
	ID                  uint         `json:"id"`
	Name                string       `json:"name"`
	Description         *string      `json:"description"`
	DestinationID       uint         `json:"destinationId"`
	GuideID             *uint        `json:"guideId"`
	StartDate           time.Time    `json:"startDate"`
	EndDate             time.Time    `json:"endDate"`
	MaxParticipants     int          `json:"maxParticipants"`
	CurrentParticipants int          `json:"currentParticipants"`
	Price               float64      `json:"price"`
	Status              string       `json:"status"`
	Destination         *Destination `json:"destination,omitempty"`
	Guide               *Guide       `json:"guide,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// Booking mirrors the bookings resource.
type Booking struct {
	ID              uint      `json:"id"`
	Reference       string    `json:"reference"`
	CustomerID      uint      `json:"customerId"`
	TourID          uint      `json:"tourId"`
	BookingDate     time.Time `json:"bookingDate"`
	TravelDate      time.Time `json:"travelDate"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	TotalAmount     float64   `json:"totalAmount"`
	Status          string    `json:"status"`
	SpecialRequests *string   `json:"specialRequests"`
	Customer        *Customer `json:"customer,omitempty"`
	Tour            *Tour     `json:"tour,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
