package models

// Collection names for the non-slugged resources. Content kinds carry their
// own via ContentKind.Collection.
const (
	CollectionUsers        = "users"
	CollectionProducts     = "products"
	CollectionTestimonials = "testimonials"
	CollectionGallery      = "gallery"
)
