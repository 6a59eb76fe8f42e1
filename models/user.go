package models

import "time"

// UserProfile mirrors the identity-provider account in the document store.
// The document id is the provider-issued subject id.
type UserProfile struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender    string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Birthdate string    `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	IsDeleted bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SignupInput is the email registration payload.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
	Address   *string `json:"address"`
	Birthdate *string `json:"birthdate"`
}
