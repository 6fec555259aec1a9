//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// RaagEntry is one row scraped from the upstream raag index page.
// PageRef is the ang (page) reference as printed by the upstream, kept verbatim.
type RaagEntry struct {
	ID      int    `json:"id"`
	RaagKey string `json:"raagKey"`
	PageRef string `json:"pageRef"`
}
