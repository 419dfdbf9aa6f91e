package repo

import (
	"context"
	"time"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// demoPost is one sample community post: its age relative to seeding time
// and how many likes it starts with.
type demoPost struct {
	content string
	age     time.Duration
	likes   int
}

var demoPosts = []demoPost{
	{
		content: "I was struggling with anxiety for months, but practicing daily mindfulness has been life-changing. If you're going through it too, know that it gets better. ❤️",
		age:     2 * time.Hour,
		likes:   24,
	},
	{
		content: "I've been using this app for a month now, and tracking my moods has helped me realize I feel best after exercise and social time. Small habits really do add up!",
		age:     4 * time.Hour,
		likes:   18,
	},
	{
		content: "Does anyone else find that listening to rain sounds helps with anxiety? It's been my go-to when feeling overwhelmed with school work.",
		age:     24 * time.Hour,
		likes:   32,
	},
	{
		content: "Just wanted to say thank you to whoever created this app. Having a safe space to track my emotions without judgment has been so helpful during my finals.",
		age:     48 * time.Hour,
		likes:   45,
	},
}

// SeedThoughtPosts fills an empty community board with the demo posts,
// authored by the anonymous user 0. A non-empty board is left untouched.
func SeedThoughtPosts(ctx context.Context, s ThoughtStore, now time.Time) error {
	count, _, _, err := s.ThoughtPostsStats(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, d := range demoPosts {
		p, err := s.CreateThoughtPost(ctx, domain.ThoughtPost{
			UserID:    0,
			Content:   d.content,
			CreatedAt: now.Add(-d.age),
		})
		if err != nil {
			return err
		}
		for i := 0; i < d.likes; i++ {
			if _, err := s.LikeThoughtPost(ctx, p.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
