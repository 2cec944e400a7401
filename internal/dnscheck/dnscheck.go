// Package dnscheck probes a virtual network's gateway to verify that
// the container runtime's DNS resolver is answering on it.
package dnscheck

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/hostcfg/podnet/internal/log"
)

// ProbeName is the well-known record every runtime resolver serves to
// its networks, used as a harmless test question.
const ProbeName = "host.containers.internal."

const probeTimeout = 2 * time.Second

// Result is the outcome of a single gateway probe.
type Result struct {
	Responding bool          `json:"responding"`
	Latency    time.Duration `json:"latency_ns"`
	Answers    int           `json:"answers"`
	Error      string        `json:"error,omitempty"`
}

// Exchanger sends one DNS query. Satisfied by dns.Client.
type Exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, addr string) (*dns.Msg, time.Duration, error)
}

// Probe sends a single A query for ProbeName to gateway:53 over UDP.
// The probe is purely diagnostic: it never affects integration status.
func Probe(ctx context.Context, gateway string) *Result {
	client := &dns.Client{Timeout: probeTimeout}
	return probe(ctx, client, gateway)
}

func probe(ctx context.Context, exchanger Exchanger, gateway string) *Result {
	msg := new(dns.Msg)
	msg.SetQuestion(ProbeName, dns.TypeA)
	msg.RecursionDesired = true

	addr := net.JoinHostPort(gateway, "53")
	reply, rtt, err := exchanger.ExchangeContext(ctx, msg, addr)
	if err != nil {
		log.Debugf("DNS probe to %s failed: %v", addr, err)
		return &Result{Error: err.Error()}
	}

	// Any well-formed reply proves a resolver is listening, even NXDOMAIN.
	return &Result{
		Responding: true,
		Latency:    rtt,
		Answers:    len(reply.Answer),
	}
}
