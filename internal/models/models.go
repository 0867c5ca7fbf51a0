package models

import (
	"time"

	"github.com/lib/pq"
)

// PageSize is the fixed number of rows in every paginated product listing.
const PageSize = 20

// MaxImages bounds the image sequence of a product.
const MaxImages = 3

type User struct {
	UserID       int       `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Joined       time.Time `json:"joined" db:"joined"`
}

type Category struct {
	CategoryID int    `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
}

type Product struct {
	ProductID   int            `json:"product_id" db:"product_id"`
	UserID      int            `json:"user_id" db:"user_id"`
	CategoryID  int            `json:"category_id" db:"category_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Price       int            `json:"price" db:"price"`
	Images      pq.StringArray `json:"images" db:"images"`
	Listed      time.Time      `json:"listed" db:"listed"`
	Location    string         `json:"location" db:"location"`
}

// ProductSummary is the narrow projection used by list and search views.
// Image holds the first image URL only.
type ProductSummary struct {
	ProductID   int       `json:"product_id" db:"product_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"`
	Image       *string   `json:"image" db:"image"`
	Location    string    `json:"location" db:"location"`
	Listed      time.Time `json:"listed" db:"listed"`
}

// ProductDetail is the full single-product view with the owner and
// category joined in. Messages stays nil for anonymous viewers so the
// field is left out of the JSON entirely.
type ProductDetail struct {
	ProductID   int            `json:"product_id" db:"product_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Price       int            `json:"price" db:"price"`
	Images      pq.StringArray `json:"images" db:"images"`
	Listed      time.Time      `json:"listed" db:"listed"`
	Location    string         `json:"location" db:"location"`
	UserID      int            `json:"user_id" db:"user_id"`
	Username    string         `json:"username" db:"username"`
	Category    string         `json:"category" db:"category"`
	Messages    *[]Message     `json:"messages,omitempty" db:"-"`
}

type Message struct {
	MessageID int       `json:"message_id" db:"message_id"`
	ProductID int       `json:"product_id" db:"product_id"`
	Sender    int       `json:"sender" db:"sender"`
	Receiver  int       `json:"receiver" db:"receiver"`
	Text      string    `json:"text" db:"text"`
	Time      time.Time `json:"time" db:"time"`
}

// ProductPage is the result of a paginated listing. Count is the decimal
// string of the total number of rows matching the active filter.
type ProductPage struct {
	Products []ProductSummary `json:"products"`
	Count    string           `json:"count"`
}

// Viewer is the identity of whoever requests a product: either
// AnonymousViewer or AuthenticatedViewer.
type Viewer interface {
	isViewer()
}

type AnonymousViewer struct{}

type AuthenticatedViewer struct {
	UserID int
}

func (AnonymousViewer) isViewer()     {}
func (AuthenticatedViewer) isViewer() {}
