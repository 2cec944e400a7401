// Package integration implements the network-integration reconciler.
//
// A container runtime creates isolated virtual networks (bridge, macvlan,
// ipvlan) with their own subnets. For each of them the host needs a
// matching set of configuration pieces: a bridge device (bridge driver
// only), a static interface section, a firewall zone listing the network
// with a DNS-allow rule, and an entry on the host resolver's exclusion
// list so it cedes the bridge device to the runtime's own DNS service.
//
// Both sides are independently mutable, so the engine is built around
// reconciliation rather than bookkeeping: the configuration store is the
// single source of truth, and every operation computes the diff against
// it and applies only what is missing.
//
//   - IsIntegrationComplete reports which pieces exist.
//   - CreateIntegration builds all missing pieces in dependency order.
//   - RepairIntegration rebuilds only the missing pieces, never zones.
//   - RemoveIntegration tears down with reference-counted cleanup of
//     shared zones and devices.
//
// All store mutations of one operation are staged and committed together
// with a single save and apply; the apply carries a rollback window. The
// engine performs no locking and assumes callers serialize operations.
package integration
