package source

import (
	"regexp"
	"strings"
	"time"
)

// Source is one tracked Instagram account the scraper polls.
type Source struct {
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	ProfilePic string    `json:"profilePic"`
	Followers  int       `json:"followers"`
	AddedAt    time.Time `json:"addedAt"`
}

var (
	profileURLRe = regexp.MustCompile(`instagram\.com/([^/?]+)`)
	handleRe     = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
)

// ExtractUsername normalizes a user supplied identifier into a bare
// handle: surrounding whitespace is trimmed, one leading "@" stripped,
// and a profile URL reduced to its handle segment. The empty string is
// returned when the input is not a recognizable identifier; nothing
// invalid ever reaches the network.
func ExtractUsername(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "@")
	if input == "" {
		return ""
	}
	if m := profileURLRe.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if handleRe.MatchString(input) {
		return input
	}
	return ""
}
