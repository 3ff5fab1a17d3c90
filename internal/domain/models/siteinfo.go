package models

// SiteInfo holds the business details shown in the header, footer and
// contact page. It is loaded from configuration, not the database.
type SiteInfo struct {
	Name    string
	Tagline string
	Phone   string
	Email   string
	Address string
}

// DefaultSiteName is used when no site name is configured.
const DefaultSiteName = "Vastu Vidya"
