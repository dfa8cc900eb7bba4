package intel

// ContextPackage is the unified intelligence document fed to the
// generation prompt. Field names are part of the prompt contract, the
// template's context marker is replaced with this structure serialized
// as JSON.
type ContextPackage struct {
	Meta             Meta             `json:"meta"`
	BusinessIdentity BusinessIdentity `json:"business_identity"`
	WebsiteInsights  WebsiteInsights  `json:"website_insights"`
	ReviewsInsights  ReviewsInsights  `json:"reviews_insights"`
	OrgSnapshot      OrgSnapshot      `json:"org_snapshot"`
	Inferences       Inferences       `json:"inferences"`
}

type Meta struct {
	GeneratedAt    string `json:"generated_at"`
	TargetBusiness string `json:"target_business"`
}

type Sources struct {
	Location string `json:"location"`
	Domain   string `json:"domain"`
}

type BusinessIdentity struct {
	Name             string  `json:"name"`
	Domain           string  `json:"domain"`
	InferredLocation string  `json:"inferred_location"`
	InferredNiche    string  `json:"inferred_niche"`
	Sources          Sources `json:"sources"`
}

type WebsiteInsights struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Headings        []string `json:"headings"`
	SocialLinks     []string `json:"social_links"`
	Emails          []string `json:"emails"`
	SourceURL       string   `json:"source_url"`
	RawTextSummary  string   `json:"raw_text_summary"`
}

type ReviewsInsights struct {
	Note           string   `json:"note,omitempty"`
	TotalReviews   int      `json:"total_reviews"`
	AverageRating  float64  `json:"average_rating"`
	PositiveThemes []string `json:"positive_themes"`
	TopReviews     []string `json:"top_reviews"`
	SourceURL      string   `json:"source_url"`
}

type PersonRef struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	ProfileURL string `json:"profile_url"`
}

type OrgSnapshot struct {
	EstimatedSize string      `json:"estimated_size"`
	About         string      `json:"about"`
	Specialties   string      `json:"specialties"`
	KeyPersonnel  []PersonRef `json:"key_personnel"`
	SourceURL     string      `json:"source_url"`
}

type Inferences struct {
	PainPoints           []string `json:"pain_points"`
	MarketSophistication string   `json:"market_sophistication"`
	CapacitySignals      string   `json:"capacity_signals"`
	OwnerInference       string   `json:"owner_inference"`
}
