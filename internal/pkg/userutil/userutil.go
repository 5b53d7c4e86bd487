package userutil

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
)

const (
	FilterNone         = ""
	FilterAlphabetical = "alphabetical"
	FilterWithPrefix   = "withPrefix"
)

var defaultPrefixes = []string{"a", "b", "c"}

// Filtered is the result of ApplyFilter: either a flat list or users
// grouped by name prefix.
type Filtered struct {
	Users  []model.User            `json:"users,omitempty"`
	Groups map[string][]model.User `json:"groups,omitempty"`
}

func FullName(u model.User) string {
	return strings.TrimSpace(u.Name + " " + u.LastName)
}

// OrderByName sorts a copy of users by full name; the input is left untouched.
func OrderByName(users []model.User) []model.User {
	out := make([]model.User, len(users))
	copy(out, users)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(FullName(out[i])), strings.ToLower(FullName(out[j]))
		if a == b {
			return FullName(out[i]) < FullName(out[j])
		}
		return a < b
	})
	return out
}

func CapitalizeLastName(u model.User) model.User {
	if u.LastName == "" {
		return u
	}
	r, size := utf8.DecodeRuneInString(u.LastName)
	u.LastName = string(unicode.ToUpper(r)) + u.LastName[size:]
	return u
}

func CapitalizeLastNames(users []model.User) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, CapitalizeLastName(u))
	}
	return out
}

func FilterByPrefix(users []model.User, prefix string) []model.User {
	prefix = strings.ToLower(prefix)
	out := make([]model.User, 0)
	for _, u := range users {
		if strings.HasPrefix(strings.ToLower(FullName(u)), prefix) {
			out = append(out, u)
		}
	}
	return out
}

// GroupByPrefix buckets users under the first matching prefix. Users matching
// no prefix are dropped. Within a bucket the last seen user comes first.
func GroupByPrefix(users []model.User, prefixes []string) map[string][]model.User {
	groups := make(map[string][]model.User)
	for _, u := range users {
		name := strings.ToLower(FullName(u))
		for _, prefix := range prefixes {
			if !strings.HasPrefix(name, strings.ToLower(prefix)) {
				continue
			}
			groups[prefix] = append([]model.User{u}, groups[prefix]...)
			break
		}
	}
	return groups
}

func ApplyFilter(users []model.User, filter string) (*Filtered, error) {
	switch filter {
	case FilterNone:
		return &Filtered{Users: users}, nil
	case FilterAlphabetical:
		return &Filtered{Users: CapitalizeLastNames(OrderByName(users))}, nil
	case FilterWithPrefix:
		return &Filtered{Groups: GroupByPrefix(users, defaultPrefixes)}, nil
	default:
		return nil, appErr.ErrUnknownFilter
	}
}
