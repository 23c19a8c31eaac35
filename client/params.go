package client

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Categories accepted by the top-headlines endpoint, in upstream order.
var Categories = []string{
	"general", "world", "nation", "business", "technology",
	"entertainment", "sports", "science", "health",
}

var (
	codePattern = regexp.MustCompile(`^[a-z]{2}$`)

	searchableFields = map[string]bool{"title": true, "description": true, "content": true}
	nullableFields   = map[string]bool{"description": true, "content": true, "image": true}
	sortOrders       = map[string]bool{"publishedAt": true, "relevance": true}
	categories       = func() map[string]bool {
		m := make(map[string]bool, len(Categories))
		for _, c := range Categories {
			m[c] = true
		}
		return m
	}()
)

// SearchParams is a normalized /search request. Max must be set (callers
// apply the default of 10 when the caller's input omitted it); every other
// field is optional and its zero value means "not supplied".
type SearchParams struct {
	Query    string
	Language string
	Country  string
	Max      int
	In       []string
	Nullable []string
	From     string
	To       string
	SortBy   string
	Page     int
}

// HeadlinesParams is a normalized /top-headlines request. Category and Max
// must be set; callers default them to "general" and 10.
type HeadlinesParams struct {
	Category string
	Query    string
	Language string
	Country  string
	Max      int
	Nullable []string
	From     string
	To       string
	Page     int
}

// Validate normalizes the params in place (trimming the query, lowercasing
// language and country codes) and reports the first violating field as a
// *ValidationError. Fields are checked in a fixed order, so the reported
// field is deterministic. No network I/O happens here or before here.
func (p *SearchParams) Validate() error {
	p.Query = strings.TrimSpace(p.Query)
	if p.Query == "" {
		return &ValidationError{Field: "q", Reason: "search query is required and must be non-empty"}
	}
	if err := normalizeCodes(&p.Language, &p.Country); err != nil {
		return err
	}
	if err := validateMax(p.Max); err != nil {
		return err
	}
	if err := validateSubset("in", p.In, searchableFields, "title, description, content"); err != nil {
		return err
	}
	if err := validateSubset("nullable", p.Nullable, nullableFields, "description, content, image"); err != nil {
		return err
	}
	if err := validateDateRange(p.From, p.To); err != nil {
		return err
	}
	if p.SortBy != "" && !sortOrders[p.SortBy] {
		return &ValidationError{Field: "sortby", Reason: fmt.Sprintf("%q is not one of publishedAt, relevance", p.SortBy)}
	}
	return validatePage(p.Page)
}

// Validate is the headlines counterpart of SearchParams.Validate. The query
// is optional here; a blank query is trimmed away and treated as absent, so
// Values never sends an empty q.
func (p *HeadlinesParams) Validate() error {
	if !categories[p.Category] {
		return &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("%q is not one of %s", p.Category, strings.Join(Categories, ", ")),
		}
	}
	p.Query = strings.TrimSpace(p.Query)
	if err := normalizeCodes(&p.Language, &p.Country); err != nil {
		return err
	}
	if err := validateMax(p.Max); err != nil {
		return err
	}
	if err := validateSubset("nullable", p.Nullable, nullableFields, "description, content, image"); err != nil {
		return err
	}
	if err := validateDateRange(p.From, p.To); err != nil {
		return err
	}
	return validatePage(p.Page)
}

func normalizeCodes(lang, country *string) error {
	*lang = strings.ToLower(strings.TrimSpace(*lang))
	if err := validateCode("lang", *lang); err != nil {
		return err
	}
	*country = strings.ToLower(strings.TrimSpace(*country))
	return validateCode("country", *country)
}

func validateCode(field, code string) error {
	if code == "" {
		return nil
	}
	if !codePattern.MatchString(code) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a 2-letter code", code)}
	}
	return nil
}

func validateMax(max int) error {
	if max < 1 || max > 100 {
		return &ValidationError{Field: "max", Reason: fmt.Sprintf("%d is outside the range 1-100", max)}
	}
	return nil
}

func validateSubset(field string, values []string, allowed map[string]bool, allowedList string) error {
	for _, v := range values {
		if !allowed[v] {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not one of %s", v, allowedList)}
		}
	}
	return nil
}

func validateDateRange(from, to string) error {
	var fromTime, toTime time.Time
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return &ValidationError{Field: "from", Reason: fmt.Sprintf("%q is not an ISO-8601 timestamp", from)}
		}
		fromTime = t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return &ValidationError{Field: "to", Reason: fmt.Sprintf("%q is not an ISO-8601 timestamp", to)}
		}
		toTime = t
	}
	if from != "" && to != "" && fromTime.After(toTime) {
		return &ValidationError{Field: "from", Reason: "must not be after to"}
	}
	return nil
}

func validatePage(page int) error {
	if page != 0 && page < 1 {
		return &ValidationError{Field: "page", Reason: fmt.Sprintf("%d is not a positive page number", page)}
	}
	return nil
}

// Values renders the upstream query parameters using the provider's field
// names. Unsupplied optionals are omitted rather than sent empty. The API
// key is never included here; the Client attaches it when issuing the
// request, so Values output is safe to log and to echo back to callers.
func (p *SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("q", p.Query)
	setCommon(v, p.Language, p.Country, p.Max, p.Nullable, p.From, p.To, p.Page)
	if len(p.In) > 0 {
		v.Set("in", strings.Join(p.In, ","))
	}
	if p.SortBy != "" {
		v.Set("sortby", p.SortBy)
	}
	return v
}

// Values renders the upstream query parameters for /top-headlines. The
// category is always sent; the provider requires it explicitly.
func (p *HeadlinesParams) Values() url.Values {
	v := url.Values{}
	category := p.Category
	if category == "" {
		category = "general"
	}
	v.Set("category", category)
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	setCommon(v, p.Language, p.Country, p.Max, p.Nullable, p.From, p.To, p.Page)
	return v
}

func setCommon(v url.Values, lang, country string, max int, nullable []string, from, to string, page int) {
	if lang != "" {
		v.Set("lang", lang)
	}
	if country != "" {
		v.Set("country", country)
	}
	if max != 0 {
		v.Set("max", strconv.Itoa(max))
	}
	if len(nullable) > 0 {
		v.Set("nullable", strings.Join(nullable, ","))
	}
	if from != "" {
		v.Set("from", from)
	}
	if to != "" {
		v.Set("to", to)
	}
	if page != 0 {
		v.Set("page", strconv.Itoa(page))
	}
}

// Used flattens Values into the parameters_used echo map. Deriving it from
// Values guarantees the echo matches what was actually sent upstream.
func (p *SearchParams) Used() map[string]string {
	return flatten(p.Values())
}

// Used flattens Values into the parameters_used echo map.
func (p *HeadlinesParams) Used() map[string]string {
	return flatten(p.Values())
}

func flatten(v url.Values) map[string]string {
	out := make(map[string]string, len(v))
	for key, values := range v {
		out[key] = values[0]
	}
	return out
}
