package instagram

import (
	"time"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
)

type rawResponse struct {
	Data struct {
		User *rawUser `json:"user"`
	} `json:"data"`
}

type rawCount struct {
	Count int `json:"count"`
}

type rawUser struct {
	Username                 string      `json:"username"`
	FullName                 string      `json:"full_name"`
	Biography                string      `json:"biography"`
	ProfilePicURL            string      `json:"profile_pic_url"`
	ProfilePicURLHD          string      `json:"profile_pic_url_hd"`
	IsPrivate                bool        `json:"is_private"`
	IsVerified               bool        `json:"is_verified"`
	IsBusinessAccount        bool        `json:"is_business_account"`
	EdgeFollowedBy           rawCount    `json:"edge_followed_by"`
	EdgeFollow               rawCount    `json:"edge_follow"`
	EdgeOwnerToTimelineMedia rawTimeline `json:"edge_owner_to_timeline_media"`
}

type rawTimeline struct {
	Count int `json:"count"`
	Edges []struct {
		Node rawNode `json:"node"`
	} `json:"edges"`
}

type rawNode struct {
	ID                 string `json:"id"`
	Shortcode          string `json:"shortcode"`
	DisplayURL         string `json:"display_url"`
	ThumbnailSrc       string `json:"thumbnail_src"`
	IsVideo            bool   `json:"is_video"`
	TakenAtTimestamp   int64  `json:"taken_at_timestamp"`
	EdgeMediaToCaption struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`
	EdgeLikedBy           *rawCount `json:"edge_liked_by"`
	EdgeMediaPreviewLike  *rawCount `json:"edge_media_preview_like"`
	EdgeMediaToComment    *rawCount `json:"edge_media_to_comment"`
	EdgeSidecarToChildren *struct {
		Edges []struct {
			Node struct {
				ID         string `json:"id"`
				DisplayURL string `json:"display_url"`
				IsVideo    bool   `json:"is_video"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_sidecar_to_children"`
}

func mapUser(u *rawUser) *instagram.ProfileData {
	data := &instagram.ProfileData{
		Profile: instagram.Profile{
			Username:   u.Username,
			FullName:   u.FullName,
			Bio:        u.Biography,
			ProfilePic: pickProfilePic(u),
			Followers:  u.EdgeFollowedBy.Count,
			Following:  u.EdgeFollow.Count,
			PostsCount: u.EdgeOwnerToTimelineMedia.Count,
			IsPrivate:  u.IsPrivate,
			IsVerified: u.IsVerified,
			IsBusiness: u.IsBusinessAccount,
		},
	}
	for _, edge := range u.EdgeOwnerToTimelineMedia.Edges {
		data.Posts = append(data.Posts, mapNode(edge.Node))
	}
	return data
}

func pickProfilePic(u *rawUser) string {
	if u.ProfilePicURLHD != "" {
		return u.ProfilePicURLHD
	}
	return u.ProfilePicURL
}

// mapNode converts one raw timeline node into the library candidate
// shape: absent counters default to zero, the caption to "", and
// carousel children stay nested under the parent post.
func mapNode(n rawNode) instagram.Post {
	post := instagram.Post{
		ID:           n.ID,
		Shortcode:    n.Shortcode,
		DisplayURL:   n.DisplayURL,
		ThumbnailURL: n.ThumbnailSrc,
		IsVideo:      n.IsVideo,
	}
	if post.ThumbnailURL == "" {
		post.ThumbnailURL = n.DisplayURL
	}

	if edges := n.EdgeMediaToCaption.Edges; len(edges) > 0 {
		post.Caption = edges[0].Node.Text
	}

	// Instagram reports likes under one of two edges depending on the
	// endpoint and account type.
	if n.EdgeLikedBy != nil && n.EdgeLikedBy.Count > 0 {
		post.Likes = n.EdgeLikedBy.Count
	} else if n.EdgeMediaPreviewLike != nil {
		post.Likes = n.EdgeMediaPreviewLike.Count
	}
	if n.EdgeMediaToComment != nil {
		post.Comments = n.EdgeMediaToComment.Count
	}

	if n.TakenAtTimestamp > 0 {
		ts := time.Unix(n.TakenAtTimestamp, 0).UTC()
		post.PublishedAt = &ts
	}

	if n.EdgeSidecarToChildren != nil {
		for _, edge := range n.EdgeSidecarToChildren.Edges {
			post.CarouselMedia = append(post.CarouselMedia, instagram.CarouselChild{
				ID:         edge.Node.ID,
				DisplayURL: edge.Node.DisplayURL,
				IsVideo:    edge.Node.IsVideo,
			})
		}
	}

	return post
}
