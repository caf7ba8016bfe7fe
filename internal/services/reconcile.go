package services

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// record is a decoded loosely-shaped object. Lookups go through the alias
// tables below; keys are never interpreted any other way.
type record map[string]any

// Aliases are tried in order and the first non-blank value wins. Keys match
// case-insensitively, with an exact spelling preferred.
var (
	userNameAliases     = []string{"name", "fullName"}
	userFirstNameAlias  = []string{"firstName"}
	userLastNameAlias   = []string{"lastName"}
	userEmailAliases    = []string{"email", "userEmail", "username"}
	userPhoneAliases    = []string{"phone", "mobile", "contact"}
	userPasswordAliases = []string{"password", "pwd"}

	productIDAliases       = []string{"id", "productId"}
	productNameAliases     = []string{"name", "title"}
	productCategoryAliases = []string{"category"}
	productPriceAliases    = []string{"price"}
	productRatingAliases   = []string{"rating"}
	productImageAliases    = []string{"image", "img", "imageUrl"}
	productFeaturedAliases = []string{"featured"}
)

func decodeRecord(b []byte) (record, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	return record(m), true
}

// toRecord accepts a serialized object or an already decoded one.
func toRecord(input any) (record, bool) {
	switch v := input.(type) {
	case nil:
		return nil, false
	case string:
		return decodeRecord([]byte(v))
	case []byte:
		return decodeRecord(v)
	case json.RawMessage:
		return decodeRecord(v)
	case map[string]any:
		return record(v), v != nil
	case map[string]string:
		r := make(record, len(v))
		for k, s := range v {
			r[k] = s
		}
		return r, true
	}
	return nil, false
}

// scalar renders a string or number the way it was written. Anything else
// (objects, arrays, null) is blank.
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// candidates yields values for alias: the exact key first, then other
// spellings in sorted key order so the result never depends on map order.
func (r record) candidates(alias string) []any {
	var out []any
	if v, ok := r[alias]; ok {
		out = append(out, v)
	}
	var keys []string
	for k := range r {
		if k != alias && strings.EqualFold(k, alias) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, r[k])
	}
	return out
}

// first returns the first non-blank value across aliases.
func (r record) first(aliases []string) (any, bool) {
	for _, a := range aliases {
		for _, v := range r.candidates(a) {
			if strings.TrimSpace(scalar(v)) != "" {
				return v, true
			}
		}
	}
	return nil, false
}

func (r record) text(aliases []string) string {
	v, _ := r.first(aliases)
	return scalar(v)
}

// NormalizeUser folds any historical user shape into the canonical record.
// Unparsable input yields a blank record. Applying it twice equals applying
// it once.
func NormalizeUser(input any) domain.UserRecord {
	switch u := input.(type) {
	case domain.UserRecord:
		return canonicalUser(u)
	case *domain.UserRecord:
		if u == nil {
			return domain.UserRecord{}
		}
		return canonicalUser(*u)
	}
	r, ok := toRecord(input)
	if !ok {
		return domain.UserRecord{}
	}

	name := strings.TrimSpace(r.text(userNameAliases))
	if name == "" {
		var parts []string
		for _, p := range []string{r.text(userFirstNameAlias), r.text(userLastNameAlias)} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		name = strings.Join(parts, " ")
	}
	return domain.UserRecord{
		Name:     name,
		Email:    strings.TrimSpace(r.text(userEmailAliases)),
		Phone:    strings.TrimSpace(r.text(userPhoneAliases)),
		Password: r.text(userPasswordAliases),
	}
}

func canonicalUser(u domain.UserRecord) domain.UserRecord {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	if strings.TrimSpace(u.Password) == "" {
		u.Password = ""
	}
	return u
}

// IsLoggedIn reports whether the record carries any identity. A password
// alone does not count.
func IsLoggedIn(u domain.UserRecord) bool {
	return strings.TrimSpace(u.Name) != "" ||
		strings.TrimSpace(u.Email) != "" ||
		strings.TrimSpace(u.Phone) != ""
}

// NormalizeProduct maps a stored catalog record to a Product. ok is false
// when the record has no usable positive id.
func NormalizeProduct(input any) (domain.Product, bool) {
	if p, isProduct := input.(domain.Product); isProduct {
		return canonicalProduct(p), p.ID > 0
	}
	r, ok := toRecord(input)
	if !ok {
		return domain.Product{}, false
	}
	id, err := strconv.ParseFloat(strings.TrimSpace(r.text(productIDAliases)), 64)
	if err != nil || id < 1 || id != math.Trunc(id) {
		return domain.Product{}, false
	}
	price, _ := r.first(productPriceAliases)
	rating, _ := r.first(productRatingAliases)
	featured, _ := r.first(productFeaturedAliases)
	return canonicalProduct(domain.Product{
		ID:       domain.ProductID(id),
		Name:     r.text(productNameAliases),
		Category: r.text(productCategoryAliases),
		Price:    pricing.Amount(price),
		Rating:   pricing.Amount(rating),
		Image:    r.text(productImageAliases),
		Featured: truthy(featured),
	}), true
}

func canonicalProduct(p domain.Product) domain.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Image = strings.TrimSpace(p.Image)
	if p.Price < 0 || math.IsNaN(p.Price) {
		p.Price = 0
	}
	p.Rating = math.Min(5, math.Max(0, p.Rating))
	if math.IsNaN(p.Rating) {
		p.Rating = 0
	}
	return p
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "on", "1":
			return true
		}
	}
	return false
}

// NormalizeProducts reconciles a stored catalog, dropping records without
// an id and repeated ids (the first wins).
func NormalizeProducts(recs []json.RawMessage) []domain.Product {
	out := make([]domain.Product, 0, len(recs))
	seen := map[domain.ProductID]bool{}
	for _, raw := range recs {
		p, ok := NormalizeProduct(raw)
		if !ok || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

func encodeUser(u domain.UserRecord) (string, error) {
	b, err := json.Marshal(u)
	return string(b), err
}
