package audit

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// UnresolvedLinkEvent is published for every relative link the resolver could
// not rewrite to a canonical URL. Downstream consumers turn these into forge
// issues or dashboards.
type UnresolvedLinkEvent struct {
	AuditID string `json:"audit_id"`

	Href string            `json:"href"`
	Kind markdown.LinkKind `json:"kind"`

	// Source page metadata.
	ContentPath string `json:"content_path"`
	FilePath    string `json:"file_path"`
	Dir         string `json:"dir"`
	Locale      string `json:"locale,omitempty"`
	Title       string `json:"title,omitempty"`
	PageURL     string `json:"page_url"`

	Timestamp time.Time `json:"timestamp"`
}
