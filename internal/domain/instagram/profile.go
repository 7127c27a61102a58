package instagram

import "time"

// Profile is the metadata of a resolved Instagram account.
type Profile struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
	Followers  int    `json:"followers"`
	Following  int    `json:"following"`
	PostsCount int    `json:"postsCount"`
	IsPrivate  bool   `json:"isPrivate"`
	IsVerified bool   `json:"isVerified"`
	IsBusiness bool   `json:"isBusiness"`
}

// CarouselChild is one entry of a multi-image post. Children stay nested
// under their parent post and are never promoted to library entries of
// their own.
type CarouselChild struct {
	ID         string `json:"id"`
	DisplayURL string `json:"displayUrl"`
	IsVideo    bool   `json:"isVideo"`
}

// Post is a single timeline entry in the shape the library ingests.
// Counters default to zero and the caption to "" when the source omits
// them; PublishedAt is nil when the source carries no timestamp.
type Post struct {
	ID            string          `json:"id"`
	Shortcode     string          `json:"shortcode,omitempty"`
	DisplayURL    string          `json:"displayUrl"`
	ThumbnailURL  string          `json:"thumbnailUrl"`
	Caption       string          `json:"caption"`
	Likes         int             `json:"likes"`
	Comments      int             `json:"comments"`
	IsVideo       bool            `json:"isVideo"`
	PublishedAt   *time.Time      `json:"date,omitempty"`
	CarouselMedia []CarouselChild `json:"carouselMedia,omitempty"`
}

// ProfileData is what one fetch strategy yields: the profile plus its
// visible timeline. A private profile resolves with an empty timeline.
type ProfileData struct {
	Profile Profile
	Posts   []Post
}
