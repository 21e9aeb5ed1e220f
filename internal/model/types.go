// Package model defines the core data structures for barkly.
package model

import "net/url"

// DogImage is a single fetched dog photo.
// The ID is always derived from the image URL and never assigned separately.
type DogImage struct {
	ID       string
	imageURL url.URL
}

// NewDogImage returns a DogImage for u. The URL is copied, so later changes
// to u do not affect the image.
func NewDogImage(u *url.URL) DogImage {
	img := DogImage{imageURL: *u}
	img.ID = img.imageURL.String()
	return img
}

// ImageURL returns a copy of the image URL.
func (d DogImage) ImageURL() *url.URL {
	u := d.imageURL
	return &u
}

// String returns the canonical URL string.
func (d DogImage) String() string {
	return d.ID
}

// Equal reports whether two images point at the same URL.
func (d DogImage) Equal(other DogImage) bool {
	return d.imageURL.String() == other.imageURL.String()
}

// IsZero reports whether d was never constructed.
func (d DogImage) IsZero() bool {
	return d.ID == ""
}
