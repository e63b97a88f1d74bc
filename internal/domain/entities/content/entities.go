// Package content defines the application's content directory domain entities.
package content

import "time"

// Article is the richest directory entity: ordered, taggable, with media
// attachments and an exclusive featured flag (at most three site-wide).
type Article struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Body          string     `json:"body"`
	ThumbnailPath *string    `json:"thumbnailPath,omitempty"`
	GalleryPaths  []string   `json:"galleryPaths,omitempty"`
	VideoPath     *string    `json:"videoPath,omitempty"`
	DocumentPaths []string   `json:"documentPaths,omitempty"`
	TagIDs        []string   `json:"tagIds,omitempty"`
	IsFeatured    bool       `json:"isFeatured"`
	Position      int        `json:"position"`
	Created       time.Time  `json:"created"`
	Changed       *time.Time `json:"changed,omitempty"`
}

type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

type Partner struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logoPath,omitempty"`
	SiteURL  *string `json:"siteUrl,omitempty"`
	Position int     `json:"position"`
}

type TeamMember struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Bio       string  `json:"bio"`
	PhotoPath *string `json:"photoPath,omitempty"`
	Position  int     `json:"position"`
}

type Service struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Position    int    `json:"position"`
}

type Technology struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	LogoPath *string `json:"logoPath,omitempty"`
	Position int     `json:"position"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// ContactMessage is a stored contact-form submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
