package database

import (
	"time"

	"github.com/twitters/twitters/model"
)

// Seed fills an empty feed with the demo posts shown on a fresh
// install. It is a no-op once anything was committed.
func (f *Feed) Seed() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.posts) > 0 {
		return
	}

	f.posts = []*model.Post{
		{
			Id: "1",
			Author: &model.User{
				Id:       "2",
				Name:     "Sarah Chen",
				Vanity:   "sarahcodes",
				Avatar:   "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?auto=format&fit=crop&w=150&h=150&q=80",
				Verified: true,
			},
			Content:   "Just migrated my X feed to TwitterS. The peace of mind knowing my photos aren't being scraped is everything. 🛡️✨",
			Timestamp: "2h",
			Like:      42,
			Shielded:  true,
			Comments:  []*model.Comment{},
			CreatedAt: time.Now().Add(-2 * time.Hour),
		},
		{
			Id: "2",
			Author: &model.User{
				Id:     "3",
				Name:   "Maya Rodriguez",
				Vanity: "mayar",
				Avatar: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?auto=format&fit=crop&w=150&h=150&q=80",
			},
			Content:   "Testing out the anti-Grok filters. It feels so much lighter here without the bot chatter. Truly a safe haven for my thoughts.",
			Timestamp: "4h",
			Like:      89,
			Shielded:  true,
			Comments:  []*model.Comment{},
			CreatedAt: time.Now().Add(-4 * time.Hour),
		},
	}
}
