package siteglean

// PageType classifies a URL's role in the site's information architecture.
type PageType string

// Page types.
const (
	PageHome     PageType = "home"
	PageCategory PageType = "category"
	PageProduct  PageType = "product"
	PageAbout    PageType = "about"
	PageContact  PageType = "contact"
	PageLegal    PageType = "legal"
	PageBlog     PageType = "blog"
	PageAccount  PageType = "account"
	PageCheckout PageType = "checkout"
	PageOther    PageType = "other"
)

// PageTypeSummary is one bucket of the website structure: how many URLs of
// a type were seen and a capped sample.
type PageTypeSummary struct {
	Type       PageType `json:"type"`
	Count      int      `json:"count"`
	SampleURLs []string `json:"sampleUrls,omitempty"`
}

// KeyPages points at the most important URLs per role. Home, About and
// Contact are singular; the rest are capped lists.
type KeyPages struct {
	Home     string   `json:"home,omitempty"`
	About    string   `json:"about,omitempty"`
	Contact  string   `json:"contact,omitempty"`
	Legal    []string `json:"legal,omitempty"`
	Blog     []string `json:"blog,omitempty"`
	Category []string `json:"category,omitempty"`
	Product  []string `json:"product,omitempty"`
	Account  []string `json:"account,omitempty"`
	Checkout []string `json:"checkout,omitempty"`
}

// WebsiteStructure summarizes the site's information architecture across
// crawled and discovered-only URLs.
type WebsiteStructure struct {
	Types     []PageTypeSummary `json:"types,omitempty"`
	KeyPages  KeyPages          `json:"keyPages"`
	TotalURLs int               `json:"totalUrls"`
}
