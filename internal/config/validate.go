package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a UI should
// surface before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Scrape.Titles = trimList(out.Scrape.Titles)
	out.Scrape.Cities = trimList(out.Scrape.Cities)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if len(out.Scrape.Titles) == 0 {
		res.addErr("scrape.titles must have at least one job title")
	}
	if len(out.Scrape.Cities) == 0 {
		res.addErr("scrape.cities must have at least one city")
	}

	if out.Scrape.PageLimit <= 0 {
		res.addErr("scrape.page_limit must be > 0")
	}
	if out.Scrape.SnapshotHours <= 0 {
		res.addErr("scrape.snapshot_hours must be > 0")
	}

	if out.Scrape.MaxRetries < 0 {
		res.addErr("scrape.max_retries must be >= 0")
	}
	if out.Scrape.BaseDelaySeconds <= 0 {
		res.addErr("scrape.base_delay_seconds must be > 0")
	}
	if out.Scrape.RateLimitDelaySeconds < out.Scrape.BaseDelaySeconds {
		res.addWarn("scrape.rate_limit_delay_seconds (%d) is below base_delay_seconds (%d); rate-limit responses deserve the longer wait.",
			out.Scrape.RateLimitDelaySeconds, out.Scrape.BaseDelaySeconds)
	}

	if out.Scrape.Workers > 8 {
		res.addWarn("scrape.workers is high (%d) and may trip the source's rate limiting.", out.Scrape.Workers)
	}
	if out.Scrape.HostReqPerSec > 5 {
		res.addWarn("scrape.host_req_per_sec is high (%.1f); the source throttles aggressively.", out.Scrape.HostReqPerSec)
	}

	for k := range out.Headers {
		if strings.EqualFold(k, "cookie") {
			res.addErr("headers must not carry cookies; store the session cookie via the secrets endpoint instead")
		}
	}

	return out, res
}
