package goKiosk

import (
	"time"

	"github.com/MrEthical07/goKiosk/session"
)

// UserProfile is the account record the backend returns. Immutable from the
// gateway's perspective; only the profile operations request mutations.
type UserProfile = session.User

// Token is the response of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Message is the generic acknowledgement envelope some operations return.
type Message struct {
	Message string `json:"message"`
}

// Registration is the input for [Client.Register].
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// ProfileUpdate is the partial input for [Client.UpdateProfile]. Nil fields
// are omitted from the request and left unchanged by the backend.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// PasswordChange is the input for [Client.UpdatePassword].
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PublicationType enumerates the catalog types the backend accepts. Any other
// value is rejected with a 422.
type PublicationType string

const (
	// PublicationMagazine is the "magazine" catalog type.
	PublicationMagazine PublicationType = "magazine"
	// PublicationNewspaper is the "newspaper" catalog type.
	PublicationNewspaper PublicationType = "newspaper"
	// PublicationJournal is the "journal" catalog type.
	PublicationJournal PublicationType = "journal"
)

// PublicationCreate is the input for [Client.CreatePublication].
type PublicationCreate struct {
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Type          PublicationType `json:"type"`
	Publisher     string          `json:"publisher,omitempty"`
	Frequency     string          `json:"frequency,omitempty"`
	PriceMonthly  float64         `json:"price_monthly"`
	PriceYearly   float64         `json:"price_yearly"`
	CoverImageURL string          `json:"cover_image_url,omitempty"`
}

// PublicationUpdate is the partial input for [Client.UpdatePublication].
// Nil fields are omitted and left unchanged.
type PublicationUpdate struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Type          *PublicationType `json:"type,omitempty"`
	Publisher     *string          `json:"publisher,omitempty"`
	Frequency     *string          `json:"frequency,omitempty"`
	PriceMonthly  *float64         `json:"price_monthly,omitempty"`
	PriceYearly   *float64         `json:"price_yearly,omitempty"`
	CoverImageURL *string          `json:"cover_image_url,omitempty"`
	IsVisible     *bool            `json:"is_visible,omitempty"`
	IsAvailable   *bool            `json:"is_available,omitempty"`
}

// Publication is the catalog record the backend returns.
type Publication struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Type          PublicationType `json:"type"`
	Publisher     string          `json:"publisher,omitempty"`
	Frequency     string          `json:"frequency,omitempty"`
	PriceMonthly  float64         `json:"price_monthly"`
	PriceYearly   float64         `json:"price_yearly"`
	CoverImageURL string          `json:"cover_image_url,omitempty"`
	IsVisible     bool            `json:"is_visible"`
	IsAvailable   bool            `json:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListPublicationsParams are the optional query parameters for
// [Client.ListPublications]. Nil fields are omitted from the query string.
type ListPublicationsParams struct {
	Skip  *int
	Limit *int
	Type  PublicationType
}

// SubscriptionCreate is the input for [Client.CreateSubscription].
type SubscriptionCreate struct {
	PublicationID  int64 `json:"publication_id"`
	DurationMonths int   `json:"duration_months"`
	AutoRenew      bool  `json:"auto_renew,omitempty"`
}

// Subscription is the subscription record the backend returns.
type Subscription struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	PublicationID int64       `json:"publication_id"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	Status        string      `json:"status"`
	Price         float64     `json:"price"`
	AutoRenew     bool        `json:"auto_renew"`
	CreatedAt     time.Time   `json:"created_at"`
	Publication   Publication `json:"publication"`
}

// Health is the response of [Client.Health].
type Health struct {
	Status string `json:"status"`
}
