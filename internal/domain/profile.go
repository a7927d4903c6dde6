package domain

// User identifies a message sender across platforms.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Profile converts the sender identity into the analytics profile shape.
func (u *User) Profile() *Profile {
	if u == nil {
		return nil
	}
	return &Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Profile is the platform-provided user profile, fetched lazily and only
// to enrich analytics. All fields beyond ID are best-effort.
type Profile struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Locale     string `json:"locale,omitempty"`
	Timezone   int    `json:"timezone,omitempty"`
	Gender     string `json:"gender,omitempty"`
}
