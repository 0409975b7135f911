// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ContentBlock is a single editable text fragment addressed by a dotted
// namespace key, e.g. "hero.title". The key is the identity; saving an
// existing key overwrites its value.
type ContentBlock struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Gallery categories shown on the public gallery filter.
const (
	GalleryCategoryBraids  = "Braids"
	GalleryCategoryBridal  = "Bridal"
	GalleryCategoryMakeup  = "Makeup"
	GalleryCategoryFacials = "Facials"
	GalleryCategoryAll     = "All"
)

// Gallery image sources.
const (
	GallerySourceUpload    = "UPLOAD"
	GallerySourceInstagram = "INSTAGRAM"
	GallerySourceTikTok    = "TIKTOK"
	GallerySourceFacebook  = "FACEBOOK"
)

// GalleryImage is one image in the public gallery.
type GalleryImage struct {
	ID             string    `json:"id"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url"`
	Category       string    `json:"category,omitempty"`
	Source         string    `json:"source,omitempty"`
	IsHeroFeatured bool      `json:"isHeroFeatured"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Service is a bookable (or upcoming) salon service.
type Service struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category,omitempty"`
	Price           string `json:"price,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Position        int    `json:"position"`
	IsActive        bool   `json:"isActive"`
	IsComingSoon    bool   `json:"isComingSoon"`
	IsBookable      bool   `json:"isBookable"`
	IsFeatured      bool   `json:"isFeatured"`
}

// ServiceCategory groups services for the public services page.
type ServiceCategory struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
	Services []Service `json:"services"`
}

// FAQ is a question/answer pair shown on the public FAQ section.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// Testimonial is a client review. Rating is a 1-5 integer.
type Testimonial struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Location   string `json:"location,omitempty"`
	Text       string `json:"text"`
	Rating     int    `json:"rating"`
	Position   int    `json:"position"`
	Featured   bool   `json:"featured"`
}

// BlogPost is a published article. Body is stored as markdown and
// rendered to HTML on the public blog endpoints.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}
