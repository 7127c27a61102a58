package instagram

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilePayload = `{
  "data": {
    "user": {
      "username": "natgeo",
      "full_name": "National Geographic",
      "biography": "Experience the world through the eyes of Nat Geo photographers.",
      "profile_pic_url": "https://cdn.example.com/natgeo_150.jpg",
      "profile_pic_url_hd": "https://cdn.example.com/natgeo_hd.jpg",
      "is_private": false,
      "is_verified": true,
      "is_business_account": true,
      "edge_followed_by": {"count": 280000000},
      "edge_follow": {"count": 130},
      "edge_owner_to_timeline_media": {
        "count": 29450,
        "edges": [
          {
            "node": {
              "id": "321",
              "shortcode": "Cx1y2z3",
              "display_url": "https://cdn.example.com/321.jpg",
              "thumbnail_src": "https://cdn.example.com/321_thumb.jpg",
              "is_video": false,
              "taken_at_timestamp": 1767225600,
              "edge_media_to_caption": {"edges": [{"node": {"text": "Dawn over the Serengeti"}}]},
              "edge_liked_by": {"count": 1500},
              "edge_media_to_comment": {"count": 42}
            }
          },
          {
            "node": {
              "id": "322",
              "shortcode": "Cx9y8z7",
              "display_url": "https://cdn.example.com/322.jpg",
              "is_video": true,
              "taken_at_timestamp": 1767312000,
              "edge_media_to_caption": {"edges": []},
              "edge_liked_by": {"count": 0},
              "edge_media_preview_like": {"count": 900},
              "edge_sidecar_to_children": {
                "edges": [
                  {"node": {"id": "322a", "display_url": "https://cdn.example.com/322a.jpg", "is_video": true}},
                  {"node": {"id": "322b", "display_url": "https://cdn.example.com/322b.jpg", "is_video": false}}
                ]
              }
            }
          }
        ]
      }
    }
  }
}`

func parsePayload(t *testing.T, payload string) *rawUser {
	t.Helper()
	var parsed rawResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &parsed))
	require.NotNil(t, parsed.Data.User)
	return parsed.Data.User
}

func TestMapUserProfileFields(t *testing.T) {
	data := mapUser(parsePayload(t, profilePayload))

	assert.Equal(t, "natgeo", data.Profile.Username)
	assert.Equal(t, "National Geographic", data.Profile.FullName)
	assert.Equal(t, "https://cdn.example.com/natgeo_hd.jpg", data.Profile.ProfilePic)
	assert.Equal(t, 280000000, data.Profile.Followers)
	assert.Equal(t, 130, data.Profile.Following)
	assert.Equal(t, 29450, data.Profile.PostsCount)
	assert.False(t, data.Profile.IsPrivate)
	assert.True(t, data.Profile.IsVerified)
	assert.True(t, data.Profile.IsBusiness)
	assert.Len(t, data.Posts, 2)
}

func TestMapNodeFullPost(t *testing.T) {
	data := mapUser(parsePayload(t, profilePayload))
	post := data.Posts[0]

	assert.Equal(t, "321", post.ID)
	assert.Equal(t, "Cx1y2z3", post.Shortcode)
	assert.Equal(t, "https://cdn.example.com/321_thumb.jpg", post.ThumbnailURL)
	assert.Equal(t, "Dawn over the Serengeti", post.Caption)
	assert.Equal(t, 1500, post.Likes)
	assert.Equal(t, 42, post.Comments)
	assert.False(t, post.IsVideo)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), *post.PublishedAt)
	assert.Empty(t, post.CarouselMedia)
}

func TestMapNodeFallbacks(t *testing.T) {
	data := mapUser(parsePayload(t, profilePayload))
	post := data.Posts[1]

	// No thumbnail_src: the display url doubles as thumbnail.
	assert.Equal(t, "https://cdn.example.com/322.jpg", post.ThumbnailURL)
	// No caption edges.
	assert.Empty(t, post.Caption)
	// edge_liked_by is zero, so the preview-like edge wins.
	assert.Equal(t, 900, post.Likes)
	assert.Equal(t, 0, post.Comments)
	assert.True(t, post.IsVideo)

	require.Len(t, post.CarouselMedia, 2)
	assert.Equal(t, "322a", post.CarouselMedia[0].ID)
	assert.True(t, post.CarouselMedia[0].IsVideo)
	assert.Equal(t, "322b", post.CarouselMedia[1].ID)
	assert.False(t, post.CarouselMedia[1].IsVideo)
}

func TestMapNodeBarePost(t *testing.T) {
	post := mapNode(rawNode{ID: "9", DisplayURL: "https://cdn.example.com/9.jpg"})

	assert.Equal(t, "9", post.ID)
	assert.Equal(t, "https://cdn.example.com/9.jpg", post.ThumbnailURL)
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, 0, post.Comments)
	assert.Nil(t, post.PublishedAt)
	assert.Empty(t, post.Caption)
}

func TestMapNodeFallbackPicWhenNoHD(t *testing.T) {
	u := parsePayload(t, profilePayload)
	u.ProfilePicURLHD = ""
	data := mapUser(u)
	assert.Equal(t, "https://cdn.example.com/natgeo_150.jpg", data.Profile.ProfilePic)
}
