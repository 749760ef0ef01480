// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/store"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type SitemapHandler struct {
	st      *store.Store
	siteURL string
}

// NewSitemapHandler builds the sitemap for the public site at siteURL
func NewSitemapHandler(st *store.Store, siteURL string) *SitemapHandler {
	return &SitemapHandler{st: st, siteURL: strings.TrimRight(siteURL, "/")}
}

// Sitemap handles GET /sitemap.xml: the static pages plus every
// published post under /blog/{slug}.
func (h *SitemapHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.st.ListSitemapEntries(r.Context())
	if err != nil {
		slog.Error("failed to build sitemap", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	set := urlSet{
		Xmlns: sitemapNS,
		URLs: []sitemapURL{
			{Loc: h.siteURL + "/", ChangeFreq: "daily", Priority: "1.0"},
			{Loc: h.siteURL + "/about", ChangeFreq: "monthly", Priority: "0.5"},
			{Loc: h.siteURL + "/contact", ChangeFreq: "monthly", Priority: "0.5"},
		},
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.siteURL + "/blog/" + e.Slug,
			LastMod:    e.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		slog.Error("failed to encode sitemap", "error", err)
	}
}
