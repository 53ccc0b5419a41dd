// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package route maps the client's URL-style paths to screens.
//
//	/                          home
//	/chat                      chat
//	/full-report?area=wakad    full report for one area
//	/compare?areas=wakad,baner area comparison (also /compare-report)
//	/price-growth?area=wakad   price growth for one area
package route

import (
	"fmt"
	"net/url"
	"strings"
)

// Page identifies a screen.
type Page string

const (
	PageHome        Page = "home"
	PageChat        Page = "chat"
	PageFullReport  Page = "full-report"
	PageComparison  Page = "compare"
	PagePriceGrowth Page = "price-growth"
)

// Route is a parsed path: the page plus the areas it is about.
type Route struct {
	Page  Page
	Areas []string
}

// Home, Chat, FullReport, Comparison and PriceGrowth build routes.
func Home() Route { return Route{Page: PageHome} }
func Chat() Route { return Route{Page: PageChat} }
func FullReport(area string) Route { return Route{Page: PageFullReport, Areas: nonEmpty(area)} }
func Comparison(areas ...string) Route { return Route{Page: PageComparison, Areas: nonEmpty(areas...)} }
func PriceGrowth(area string) Route { return Route{Page: PagePriceGrowth, Areas: nonEmpty(area)} }

// Area returns the first area, or "".
func (r Route) Area() string {
	if len(r.Areas) == 0 {
		return ""
	}
	return r.Areas[0]
}

// String formats the route as a path with query parameters.
func (r Route) String() string {
	switch r.Page {
	case PageHome:
		return "/"
	case PageChat:
		return "/chat"
	case PageComparison:
		if len(r.Areas) == 0 {
			return "/compare"
		}
		return "/compare?" + url.Values{"areas": {strings.Join(r.Areas, ",")}}.Encode()
	case PageFullReport, PagePriceGrowth:
		if r.Area() == "" {
			return "/" + string(r.Page)
		}
		return "/" + string(r.Page) + "?" + url.Values{"area": {r.Area()}}.Encode()
	default:
		return "/"
	}
}

// Parse reads a path such as "/full-report?area=wakad". Area names are
// lowercased. /compare accepts both areas=a,b and repeated area=a.
func Parse(path string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(path))
	if err != nil {
		return Route{}, fmt.Errorf("route: %w", err)
	}
	q := u.Query()

	switch strings.TrimSuffix(u.Path, "/") {
	case "", "/home":
		return Home(), nil
	case "/chat":
		return Chat(), nil
	case "/full-report":
		return FullReport(strings.ToLower(q.Get("area"))), nil
	case "/price-growth":
		return PriceGrowth(strings.ToLower(q.Get("area"))), nil
	case "/compare", "/compare-report":
		var areas []string
		for _, list := range q["areas"] {
			areas = append(areas, strings.Split(list, ",")...)
		}
		areas = append(areas, q["area"]...)
		for i := range areas {
			areas[i] = strings.ToLower(strings.TrimSpace(areas[i]))
		}
		return Comparison(areas...), nil
	default:
		return Route{}, fmt.Errorf("route: unknown path %q", u.Path)
	}
}

func nonEmpty(areas ...string) []string {
	var out []string
	for _, a := range areas {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
