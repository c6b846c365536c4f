package models

import (
	"encoding/json"
	"time"
)

// Comment is the canonical comment record. The wire shape is heterogeneous
// (text vs content, like set possibly missing, replies possibly nested), so
// comments must be decoded through UnmarshalJSON, which normalizes every
// accepted variant.
type Comment struct {
	ID        string
	Text      string
	Event     Ref
	Author    Ref
	Parent    Ref
	CreatedAt time.Time
	Likes     []Ref
	Replies   []*Comment
}

type rawComment struct {
	ID            string     `json:"_id"`
	Text          *string    `json:"text"`
	Content       *string    `json:"content"`
	Event         Ref        `json:"event"`
	Author        Ref        `json:"author"`
	ParentComment Ref        `json:"parentComment"`
	CreatedAt     time.Time  `json:"createdAt"`
	Likes         []Ref      `json:"likes"`
	Replies       []*Comment `json:"replies"`
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var raw rawComment
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.ID = raw.ID
	switch {
	case raw.Text != nil:
		c.Text = *raw.Text
	case raw.Content != nil:
		c.Text = *raw.Content
	default:
		c.Text = ""
	}
	c.Event = raw.Event
	c.Author = raw.Author
	c.Parent = raw.ParentComment
	c.CreatedAt = raw.CreatedAt
	c.Likes = raw.Likes
	if c.Likes == nil {
		c.Likes = []Ref{}
	}
	c.Replies = raw.Replies
	if c.Replies == nil {
		c.Replies = []*Comment{}
	}
	return nil
}

// LikeCount derives the displayed count from the like set.
func (c *Comment) LikeCount() int {
	return len(c.Likes)
}

// LikedBy reports whether subjectID is in the like set.
func (c *Comment) LikedBy(subjectID string) bool {
	if subjectID == "" {
		return false
	}
	for _, l := range c.Likes {
		if l.ID == subjectID {
			return true
		}
	}
	return false
}

func (c *Comment) AddLike(subjectID string) {
	if c.LikedBy(subjectID) {
		return
	}
	c.Likes = append(c.Likes, Ref{ID: subjectID})
}

func (c *Comment) RemoveLike(subjectID string) {
	out := c.Likes[:0]
	for _, l := range c.Likes {
		if l.ID != subjectID {
			out = append(out, l)
		}
	}
	c.Likes = out
}

// CommentInput is the payload for comment creation. ParentComment is set
// only for replies.
type CommentInput struct {
	Text          string `json:"text"`
	EventID       string `json:"eventId"`
	ParentComment string `json:"parentComment,omitempty"`
}
