package kluby

import "time"

// ProviderName labels logs, metrics, and errors produced by this client.
const ProviderName = "kluby"

const (
	defaultBaseURL      = "https://kluby.org"
	defaultClub         = "wkt-mera"
	defaultHTTPTimeout  = 10 * time.Second
	defaultSlotDuration = 30 * time.Minute
	disciplineTennis    = 1

	rowSelector   = "#grafik tbody tr"
	tableSelector = "#grafik"
	maxErrorBody  = 512
)
