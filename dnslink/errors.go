package dnslink

import "errors"

var (
	// ErrLookupFailed indicates the DNS query could not be completed.
	ErrLookupFailed = errors.New("dnslink: lookup failed")

	// ErrNoRecord indicates the domain publishes no dnslink TXT record.
	ErrNoRecord = errors.New("dnslink: no record found")
)
