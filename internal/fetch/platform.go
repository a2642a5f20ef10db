package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board or applicant tracking system with known page markup.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformPersonio   Platform = "personio"
	PlatformStepStone  Platform = "stepstone"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformIndeed     Platform = "indeed"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	platform Platform
	hosts    []string
}{
	{PlatformGreenhouse, []string{"greenhouse.io"}},
	{PlatformLever, []string{"lever.co"}},
	{PlatformWorkday, []string{"workday.com", "myworkdayjobs.com"}},
	{PlatformPersonio, []string{"jobs.personio.de", "jobs.personio.com"}},
	{PlatformStepStone, []string{"stepstone.de", "stepstone.at", "stepstone.com"}},
	{PlatformLinkedIn, []string{"linkedin.com"}},
	{PlatformIndeed, []string{"indeed.com", "indeed.de"}},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for _, entry := range platformHosts {
		for _, h := range entry.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return entry.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform, most
// specific first, ending in the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	var specific []string
	switch platform {
	case PlatformGreenhouse:
		specific = []string{".job__description.body", ".job__description", ".job-description__content", "#content"}
	case PlatformLever:
		specific = []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"}
	case PlatformWorkday:
		specific = []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}
	case PlatformPersonio:
		specific = []string{"#job-details", ".job-details", "[data-test='job-details']"}
	case PlatformStepStone:
		specific = []string{"[data-at='job-ad-content']", ".listing-content", ".js-app-ld-ContentBlock"}
	case PlatformLinkedIn:
		specific = []string{".description__text", ".show-more-less-html__markup"}
	case PlatformIndeed:
		specific = []string{"#jobDescriptionText", ".jobsearch-JobComponent-description"}
	}
	return append(specific, JobPostingSelectors()...)
}

// PlatformNoiseSelectors returns elements removed before text extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".eeo-statement",
		".legal-disclosure",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
		"#onetrust-banner-sdk",
		".similar-jobs",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".WDAF")
	case PlatformStepStone:
		return append(common, "[data-at='header-apply-button']", ".at-listing-nav")
	case PlatformLinkedIn:
		return append(common, ".top-card-layout__cta-container", ".similar-jobs__list")
	default:
		return common
	}
}
