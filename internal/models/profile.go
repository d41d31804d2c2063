package models

// Profile is a user's public display record. The id equals the Firebase UID of
// the account. Profiles are provisioned by the identity layer; this service
// only ever reads them.
type Profile struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}
