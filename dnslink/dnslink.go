// Package dnslink resolves a domain name to a storage identifier via
// DNSLink TXT records. A registered file can be published under a
// human-readable domain by setting a TXT record on
// _dnslink.<domain> of the form "dnslink=/ipfs/<identifier>"; this
// package performs the lookup and extracts the identifier.
package dnslink

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// defaultUpstream is the default recursive resolver.
	defaultUpstream = "8.8.8.8:53"

	// defaultNamespace is the DNSLink path namespace for
	// content-addressed identifiers.
	defaultNamespace = "ipfs"

	// queryTimeout bounds a single DNS exchange.
	queryTimeout = 10 * time.Second

	// edns0BufSize is the EDNS0 UDP buffer size.
	edns0BufSize = 4096
)

// prefix is the label DNSLink records live under.
const prefix = "_dnslink."

// exchangeFunc performs one DNS exchange. Injectable for tests.
type exchangeFunc func(msg *dns.Msg, upstream string) (*dns.Msg, error)

// Resolver resolves DNSLink records against a recursive resolver.
type Resolver struct {
	// Upstream is the recursive resolver address (e.g. "8.8.8.8:53").
	Upstream string

	// Namespace is the expected DNSLink namespace ("ipfs" by default).
	Namespace string

	exchange exchangeFunc
}

// NewResolver creates a Resolver. Empty upstream defaults to 8.8.8.8:53.
func NewResolver(upstream string) *Resolver {
	if upstream == "" {
		upstream = defaultUpstream
	}
	return &Resolver{
		Upstream:  upstream,
		Namespace: defaultNamespace,
		exchange: func(msg *dns.Msg, upstream string) (*dns.Msg, error) {
			client := &dns.Client{Timeout: queryTimeout}
			resp, _, err := client.Exchange(msg, upstream)
			return resp, err
		},
	}
}

// Resolve returns the storage identifier published for domain.
// It queries TXT records on _dnslink.<domain> and parses the first
// record matching the resolver's namespace.
func (r *Resolver) Resolve(domain string) (string, error) {
	qname := dns.Fqdn(prefix + strings.TrimPrefix(domain, prefix))

	msg := new(dns.Msg)
	msg.SetQuestion(qname, dns.TypeTXT)
	msg.RecursionDesired = true
	msg.SetEdns0(edns0BufSize, false)

	resp, err := r.exchange(msg, r.Upstream)
	if err != nil {
		return "", fmt.Errorf("%w: query %s: %w", ErrLookupFailed, qname, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("%w: query %s: rcode %s",
			ErrLookupFailed, qname, dns.RcodeToString[resp.Rcode])
	}

	for _, rr := range resp.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		// TXT records may be split into multiple strings; join them.
		if id, ok := r.parse(strings.Join(txt.Txt, "")); ok {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: no dnslink record for %s", ErrNoRecord, domain)
}

// parse extracts the identifier from one TXT record value, e.g.
// "dnslink=/ipfs/QmFoo" -> "QmFoo".
func (r *Resolver) parse(record string) (string, bool) {
	value, ok := strings.CutPrefix(strings.TrimSpace(record), "dnslink=/")
	if !ok {
		return "", false
	}
	ns := r.Namespace
	if ns == "" {
		ns = defaultNamespace
	}
	id, ok := strings.CutPrefix(value, ns+"/")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Verify reports whether domain publishes the given identifier.
func (r *Resolver) Verify(domain, storageID string) (bool, error) {
	id, err := r.Resolve(domain)
	if err != nil {
		return false, err
	}
	return id == storageID, nil
}
